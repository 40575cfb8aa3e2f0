package ports

// Notification is pushed to a creator's subscribers when the creator
// publishes something new.
type Notification struct {
	Kind    string `json:"name"`
	Creator string `json:"creator"`
	Message string `json:"description"`
}

// Subscriber receives notifications. Notify may be called from delivery
// goroutines and must be safe for concurrent use.
type Subscriber interface {
	Username() string
	Notify(n Notification)
}

// Notifier fans notifications out to a creator's subscribers.
type Notifier interface {
	Subscribe(creator string, s Subscriber)
	Unsubscribe(creator, username string)
	Publish(n Notification)
}
