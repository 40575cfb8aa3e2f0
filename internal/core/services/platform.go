package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/solara-labs/cadenza/internal/core/domain"
	"github.com/solara-labs/cadenza/internal/core/ports"
)

// DefaultPremiumPrice is the pot distributed per premium run.
const DefaultPremiumPrice = 1_000_000

// adBreakDuration is the nominal length of an ad break in seconds. Ads
// never actually occupy the player, so it only documents the sentinel.
const adBreakDuration = 10

// Listener is a registered consumer account: an online flag, a player
// session, the event log the session records into and a notification
// inbox. The inbox has its own lock because delivery workers write to it
// concurrently with platform commands.
type Listener struct {
	username string
	online   bool
	log      *domain.EventLog
	session  *domain.Session

	mu    sync.Mutex
	inbox []ports.Notification
}

// Username implements ports.Subscriber.
func (l *Listener) Username() string { return l.username }

// Notify implements ports.Subscriber.
func (l *Listener) Notify(n ports.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inbox = append(l.inbox, n)
}

// Notifications drains the inbox.
func (l *Listener) Notifications() []ports.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.inbox
	l.inbox = nil
	return out
}

// artistLedger holds the artist accounts and credits listens to them. It
// is only touched under the platform lock.
type artistLedger struct {
	accounts map[string]*domain.ArtistAccount
}

// AddListens implements domain.ListenCounter, matching the creator name
// case-insensitively.
func (al *artistLedger) AddListens(creator string, n int) {
	for name, acc := range al.accounts {
		if strings.EqualFold(name, creator) {
			acc.Listens += n
		}
	}
}

// PlayerStatus is a read-only view of a listener's player.
type PlayerStatus struct {
	Track     string `json:"name"`
	Remaining int    `json:"remainedTime"`
	Repeat    string `json:"repeat"`
	Shuffle   bool   `json:"shuffle"`
	Paused    bool   `json:"paused"`
}

// Platform is the application façade: the user registries, the global
// clock and the end-of-run settlement, delegating playback to the
// per-listener sessions and content management to the catalog. One mutex
// serializes every command; only notification delivery runs outside it.
type Platform struct {
	mu sync.Mutex

	catalog  *Catalog
	notifier ports.Notifier
	repo     ports.PayoutRepository
	engine   *RevenueEngine

	clock         int
	listeners     map[string]*Listener
	listenerOrder []string
	ledger        *artistLedger
	merch         map[string]map[string]float64
	subs          map[string]map[string]bool

	settled bool
	payouts []domain.Payout
}

// NewPlatform constructs a platform. The repository may be nil when
// persistence of the end-of-run report is not needed.
func NewPlatform(catalog *Catalog, notifier ports.Notifier, repo ports.PayoutRepository, premiumPrice float64) *Platform {
	if premiumPrice <= 0 {
		premiumPrice = DefaultPremiumPrice
	}
	return &Platform{
		catalog:   catalog,
		notifier:  notifier,
		repo:      repo,
		engine:    NewRevenueEngine(premiumPrice),
		listeners: make(map[string]*Listener),
		ledger:    &artistLedger{accounts: make(map[string]*domain.ArtistAccount)},
		merch:     make(map[string]map[string]float64),
		subs:      make(map[string]map[string]bool),
	}
}

// Catalog exposes the content registry.
func (p *Platform) Catalog() *Catalog { return p.catalog }

// AddListener registers a consumer account, online by default.
func (p *Platform) AddListener(username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.listeners[username]; ok {
		return fmt.Errorf("listener %q: %w", username, domain.ErrDuplicateName)
	}
	log := domain.NewEventLog()
	p.listeners[username] = &Listener{
		username: username,
		online:   true,
		log:      log,
		session:  domain.NewSession(log, p.ledger),
	}
	p.listenerOrder = append(p.listenerOrder, username)
	return nil
}

// AddArtist registers a creator account.
func (p *Platform) AddArtist(username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ledger.accounts[username]; ok {
		return fmt.Errorf("artist %q: %w", username, domain.ErrDuplicateName)
	}
	p.ledger.accounts[username] = domain.NewArtistAccount(username)
	return nil
}

// ToggleOnline flips a listener's connection status and reports the new
// state. Offline listeners are frozen: their sessions ignore clock
// advances and reject commands.
func (p *Platform) ToggleOnline(username string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.listener(username)
	if err != nil {
		return false, err
	}
	l.online = !l.online
	return l.online, nil
}

// Clock returns the current platform time in seconds.
func (p *Platform) Clock() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clock
}

// AdvanceClock moves the platform clock to an absolute timestamp and
// simulates the elapsed interval on every online listener's session. The
// clock never moves backwards; advancing to the current time is a no-op.
func (p *Platform) AdvanceClock(to int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if to < p.clock {
		return fmt.Errorf("clock %d -> %d: %w", p.clock, to, domain.ErrBackwardClock)
	}
	elapsed := to - p.clock
	p.clock = to
	if elapsed == 0 {
		return nil
	}

	for _, username := range p.listenerOrder {
		l := p.listeners[username]
		if l.online {
			l.session.Simulate(elapsed)
		}
	}
	return nil
}

// Load resolves a catalog source by kind and name and loads it into the
// listener's player.
func (p *Platform) Load(username string, kind domain.SourceKind, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.onlineListener(username)
	if err != nil {
		return err
	}
	src, err := p.catalog.Resolve(kind, name)
	if err != nil {
		return err
	}
	return l.session.Load(src)
}

// PlayPause toggles playback and reports whether the player is now paused.
func (p *Platform) PlayPause(username string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.onlineListener(username)
	if err != nil {
		return false, err
	}
	if err := l.session.PlayPause(); err != nil {
		return false, err
	}
	return l.session.Paused(), nil
}

// Next advances to the following track and returns its name, empty when
// the source was exhausted.
func (p *Platform) Next(username string) (string, error) {
	return p.trackCommand(username, func(s *domain.Session) error {
		return s.AdvanceToNext()
	})
}

// Prev steps back to the previous track and returns its name.
func (p *Platform) Prev(username string) (string, error) {
	return p.trackCommand(username, func(s *domain.Session) error {
		return s.RetreatToPrevious()
	})
}

func (p *Platform) trackCommand(username string, cmd func(*domain.Session) error) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.onlineListener(username)
	if err != nil {
		return "", err
	}
	if err := cmd(l.session); err != nil {
		return "", err
	}
	if t := l.session.Current(); t != nil {
		return t.Name, nil
	}
	return "", nil
}

// CycleRepeat steps the repeat mode and returns its display name.
func (p *Platform) CycleRepeat(username string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.onlineListener(username)
	if err != nil {
		return "", err
	}
	mode, err := l.session.CycleRepeat()
	if err != nil {
		return "", err
	}
	return mode.String(), nil
}

// ToggleShuffle flips shuffle, regenerating the permutation when a seed is
// given, and reports the new state.
func (p *Platform) ToggleShuffle(username string, seed *int64) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.onlineListener(username)
	if err != nil {
		return false, err
	}
	return l.session.ToggleShuffle(seed)
}

// SkipForward jumps ahead in a podcast.
func (p *Platform) SkipForward(username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.onlineListener(username)
	if err != nil {
		return err
	}
	return l.session.SkipForward()
}

// SkipBackward rewinds a podcast.
func (p *Platform) SkipBackward(username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.onlineListener(username)
	if err != nil {
		return err
	}
	return l.session.SkipBackward()
}

// Status reports the listener's player state.
func (p *Platform) Status(username string) (PlayerStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.listener(username)
	if err != nil {
		return PlayerStatus{}, err
	}
	st := PlayerStatus{
		Remaining: l.session.Remaining(),
		Repeat:    l.session.RepeatMode().String(),
		Shuffle:   l.session.Shuffled(),
		Paused:    l.session.Paused(),
	}
	if t := l.session.Current(); t != nil {
		st.Track = t.Name
	}
	return st, nil
}

// InsertAd queues an ad break on the listener's player. The ad's price is
// the pot later split over the free listens of its run.
func (p *Platform) InsertAd(username string, price float64) error {
	if price < 0 {
		return domain.ErrNegativePrice
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.onlineListener(username)
	if err != nil {
		return err
	}
	return l.session.InsertAd(domain.Track{
		Name:     domain.AdBreakName,
		Duration: adBreakDuration,
		Price:    price,
	})
}

// BuyPremium marks the listener's future listens as premium.
func (p *Platform) BuyPremium(username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.listener(username)
	if err != nil {
		return err
	}
	if l.session.Premium() {
		return fmt.Errorf("listener %q already has a premium subscription", username)
	}
	l.session.SetPremium(true)
	return nil
}

// CancelPremium reverts the listener to free listens. Already recorded
// premium listens keep their flag and settle at end of run.
func (p *Platform) CancelPremium(username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.listener(username)
	if err != nil {
		return err
	}
	if !l.session.Premium() {
		return fmt.Errorf("listener %q has no premium subscription", username)
	}
	l.session.SetPremium(false)
	return nil
}

// AddSong registers an artist's standalone single.
func (p *Platform) AddSong(creator string, in SongInput) (*domain.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ledger.accounts[creator]; !ok {
		return nil, fmt.Errorf("artist %q: %w", creator, domain.ErrNotFound)
	}
	return p.catalog.AddSong(creator, in)
}

// AddAlbum registers an artist's album and notifies the subscribers.
func (p *Platform) AddAlbum(owner, name string, songs []SongInput) (*domain.Collection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ledger.accounts[owner]; !ok {
		return nil, fmt.Errorf("artist %q: %w", owner, domain.ErrNotFound)
	}
	album, err := p.catalog.AddAlbum(owner, name, songs)
	if err != nil {
		return nil, err
	}
	p.publish(owner, "New Album")
	return album, nil
}

// AddPodcast registers a creator's podcast and notifies the subscribers.
func (p *Platform) AddPodcast(owner, name string, episodes []EpisodeInput) (*domain.Collection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	podcast, err := p.catalog.AddPodcast(owner, name, episodes)
	if err != nil {
		return nil, err
	}
	p.publish(owner, "New Podcast")
	return podcast, nil
}

// AddMerch puts a merch item on sale and notifies the subscribers.
func (p *Platform) AddMerch(artist, name string, price float64) error {
	if price < 0 {
		return domain.ErrNegativePrice
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ledger.accounts[artist]; !ok {
		return fmt.Errorf("artist %q: %w", artist, domain.ErrNotFound)
	}
	items := p.merch[artist]
	if items == nil {
		items = make(map[string]float64)
		p.merch[artist] = items
	}
	if _, ok := items[name]; ok {
		return fmt.Errorf("merch %q: %w", name, domain.ErrDuplicateName)
	}
	items[name] = price
	p.publish(artist, "New Merchandise")
	return nil
}

// BuyMerch credits the item's price to the artist's merch revenue.
func (p *Platform) BuyMerch(username, artist, item string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.listener(username); err != nil {
		return err
	}
	price, ok := p.merch[artist][item]
	if !ok {
		return fmt.Errorf("merch %q by %q: %w", item, artist, domain.ErrNotFound)
	}
	p.ledger.accounts[artist].MerchRevenue += price
	return nil
}

// Subscribe toggles the listener's subscription to a creator and reports
// whether it is now active.
func (p *Platform) Subscribe(username, creator string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.listener(username)
	if err != nil {
		return false, err
	}
	if _, ok := p.ledger.accounts[creator]; !ok {
		return false, fmt.Errorf("creator %q: %w", creator, domain.ErrNotFound)
	}

	subs := p.subs[username]
	if subs == nil {
		subs = make(map[string]bool)
		p.subs[username] = subs
	}
	if subs[creator] {
		delete(subs, creator)
		if p.notifier != nil {
			p.notifier.Unsubscribe(creator, username)
		}
		return false, nil
	}
	subs[creator] = true
	if p.notifier != nil {
		p.notifier.Subscribe(creator, l)
	}
	return true, nil
}

// Notifications drains a listener's inbox.
func (p *Platform) Notifications(username string) ([]ports.Notification, error) {
	p.mu.Lock()
	l, err := p.listener(username)
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return l.Notifications(), nil
}

// WrappedListener builds the listener's listening report.
func (p *Platform) WrappedListener(username string) (ListenerWrap, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, err := p.listener(username)
	if err != nil {
		return ListenerWrap{}, err
	}
	return BuildListenerWrap(l.log)
}

// WrappedArtist builds the artist's audience report.
func (p *Platform) WrappedArtist(username string) (ArtistWrap, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ledger.accounts[username]; !ok {
		return ArtistWrap{}, fmt.Errorf("artist %q: %w", username, domain.ErrNotFound)
	}
	logs := make(map[string]*domain.EventLog, len(p.listeners))
	for name, l := range p.listeners {
		logs[name] = l.log
	}
	return BuildArtistWrap(username, logs)
}

// FanListens reports each listener's song listens credited to the artist.
// Listeners without a single play of the artist are omitted.
func (p *Platform) FanListens(artist string) (map[string]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ledger.accounts[artist]; !ok {
		return nil, fmt.Errorf("artist %q: %w", artist, domain.ErrNotFound)
	}
	counts := make(map[string]int)
	for name, l := range p.listeners {
		if n := l.log.CountFor(artist, domain.EntrySong); n > 0 {
			counts[name] = n
		}
	}
	return counts, nil
}

// EndOfRun settles monetization over every listener's play log and
// persists the report. Settlement mutates the logs, so it runs at most
// once; later calls return the stored report.
func (p *Platform) EndOfRun(ctx context.Context) ([]domain.Payout, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.settled {
		return p.payouts, nil
	}

	logs := make([]*domain.EventLog, 0, len(p.listenerOrder))
	for _, username := range p.listenerOrder {
		logs = append(logs, p.listeners[username].log)
	}
	accounts := make([]*domain.ArtistAccount, 0, len(p.ledger.accounts))
	for _, acc := range p.ledger.accounts {
		accounts = append(accounts, acc)
	}

	p.payouts = p.engine.Settle(logs, accounts)
	p.settled = true

	if p.repo != nil {
		if err := p.repo.SaveReport(ctx, p.payouts); err != nil {
			return p.payouts, fmt.Errorf("service: failed to persist payout report: %w", err)
		}
	}
	return p.payouts, nil
}

// Report loads the persisted end-of-run report.
func (p *Platform) Report(ctx context.Context) ([]domain.Payout, error) {
	if p.repo == nil {
		return nil, fmt.Errorf("payout report: %w", domain.ErrNotFound)
	}
	return p.repo.GetReport(ctx)
}

func (p *Platform) publish(creator, kind string) {
	if p.notifier == nil {
		return
	}
	p.notifier.Publish(ports.Notification{
		Kind:    kind,
		Creator: creator,
		Message: fmt.Sprintf("%s from %s.", kind, creator),
	})
}

func (p *Platform) listener(username string) (*Listener, error) {
	l, ok := p.listeners[username]
	if !ok {
		return nil, fmt.Errorf("listener %q: %w", username, domain.ErrNotFound)
	}
	return l, nil
}

func (p *Platform) onlineListener(username string) (*Listener, error) {
	l, err := p.listener(username)
	if err != nil {
		return nil, err
	}
	if !l.online {
		return nil, fmt.Errorf("listener %q: %w", username, domain.ErrOffline)
	}
	return l, nil
}
