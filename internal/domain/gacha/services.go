package gacha

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	lru "github.com/hashicorp/golang-lru"
)

const (
	poolCacheSize  = 2
	defaultPoolTTL = 5 * time.Minute
)

var ErrEmptyPool = errors.New("no pullable cards in catalog")

type Service interface {
	Pull(ctx context.Context, isPremium bool) (*models.Card, error)
	ResolvePull(ctx context.Context, userID int64, card *models.Card) (Outcome, error)
	InvalidatePools()
}

type service struct {
	repository Repository
	pools      *lru.Cache
	ttl        time.Duration
	now        func() time.Time

	mu   sync.Mutex
	intn func(n int) int
}

type cachedPool struct {
	cards       []*models.Card
	totalWeight int
	loadedAt    time.Time
}

type Option func(*service)

// WithRand replaces the random source. intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(s *service) {
		s.intn = intn
	}
}

// WithPoolTTL sets how long a loaded pool is reused before the catalog is
// read again.
func WithPoolTTL(ttl time.Duration) Option {
	return func(s *service) {
		s.ttl = ttl
	}
}

func NewService(repository Repository, opts ...Option) *service {
	pools, _ := lru.New(poolCacheSize)
	s := &service{
		repository: repository,
		pools:      pools,
		ttl:        defaultPoolTTL,
		now:        time.Now,
		intn:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func poolKey(isPremium bool) string {
	if isPremium {
		return "premium"
	}
	return "standard"
}

func (s *service) pool(ctx context.Context, isPremium bool) (*cachedPool, error) {
	key := poolKey(isPremium)
	if cached, ok := s.pools.Get(key); ok {
		p := cached.(*cachedPool)
		if s.now().Sub(p.loadedAt) < s.ttl {
			return p, nil
		}
	}

	cards, err := s.repository.GetPullable(ctx, isPremium)
	if err != nil {
		return nil, err
	}

	p := &cachedPool{loadedAt: s.now()}
	for _, c := range cards {
		if !c.Pullable() || (!isPremium && c.IsPremium) {
			continue
		}
		p.cards = append(p.cards, c)
		p.totalWeight += c.Weight
	}
	if p.totalWeight == 0 {
		return nil, ErrEmptyPool
	}

	s.pools.Add(key, p)
	return p, nil
}

// InvalidatePools drops cached pools so the next pull reads the catalog.
func (s *service) InvalidatePools() {
	s.pools.Purge()
}

// Pull draws one card, weighted by catalog weight. The standard pool leaves
// premium cards out; the premium pool has every pullable card. Either may
// return the try again entry.
func (s *service) Pull(ctx context.Context, isPremium bool) (*models.Card, error) {
	const op = "gacha.pull"
	p, err := s.pool(ctx, isPremium)
	if errors.Is(err, ErrEmptyPool) {
		return nil, errs.NotFound(op, 0, err)
	}
	if err != nil {
		return nil, errs.Wrap(op, 0, err)
	}

	s.mu.Lock()
	roll := s.intn(p.totalWeight)
	s.mu.Unlock()

	for _, c := range p.cards {
		if roll < c.Weight {
			return c, nil
		}
		roll -= c.Weight
	}
	return p.cards[len(p.cards)-1], nil
}

// ResolvePull issues the card when the user does not own it. The insert
// decides between Issued and Duplicate, so two concurrent pulls of the same
// card issue it once. The try again entry is never issued.
func (s *service) ResolvePull(ctx context.Context, userID int64, card *models.Card) (Outcome, error) {
	const op = "gacha.resolve_pull"
	if card == nil {
		return Outcome{}, errs.Validation(op, "card is required")
	}
	if card.IsSentinel() {
		return Outcome{Kind: Sentinel, Card: card}, nil
	}

	issued, err := s.repository.Issue(ctx, userID, card.ID)
	if err != nil {
		return Outcome{}, errs.Wrap(op, userID, err)
	}
	if issued {
		return Outcome{Kind: Issued, Card: card}, nil
	}
	return Outcome{Kind: Duplicate, Card: card}, nil
}
