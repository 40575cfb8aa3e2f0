package config

import "testing"

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "sqlite defaults are valid",
			cfg: Config{
				StorageDriver: "sqlite", SQLitePath: "cadenza.db",
				PremiumPrice: 1_000_000, DeliveryWorkers: 2, DeliveryQueue: 100,
			},
		},
		{
			name: "postgres needs connection params",
			cfg: Config{
				StorageDriver: "postgres",
				PremiumPrice:  1_000_000, DeliveryWorkers: 2, DeliveryQueue: 100,
			},
			wantErr: true,
		},
		{
			name: "postgres with params",
			cfg: Config{
				StorageDriver: "postgres",
				DBHost:        "localhost", DBUser: "cadenza", DBName: "cadenza",
				PremiumPrice: 1_000_000, DeliveryWorkers: 2, DeliveryQueue: 100,
			},
		},
		{
			name: "unknown driver",
			cfg: Config{
				StorageDriver: "mysql", PremiumPrice: 1, DeliveryWorkers: 1, DeliveryQueue: 1,
			},
			wantErr: true,
		},
		{
			name: "premium price must be positive",
			cfg: Config{
				StorageDriver: "sqlite", SQLitePath: "x.db",
				PremiumPrice: 0, DeliveryWorkers: 1, DeliveryQueue: 1,
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("validate: got err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}
