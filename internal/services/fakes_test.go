package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/identity"
	"sdtech_backend/internal/models"
	"sdtech_backend/internal/repositories"

	"github.com/google/uuid"
)

type recordedEvent struct {
	name    string
	payload interface{}
}

type recordingNotifier struct {
	events []recordedEvent
}

func (n *recordingNotifier) Notify(_ context.Context, event string, payload interface{}) {
	n.events = append(n.events, recordedEvent{name: event, payload: payload})
}

func (n *recordingNotifier) count(event string) int {
	c := 0
	for _, e := range n.events {
		if e.name == event {
			c++
		}
	}
	return c
}

type memProductRepo struct {
	mu    sync.Mutex
	items map[string]models.Product
	err   error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[string]models.Product{}}
}

func (r *memProductRepo) FindAll(context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Product{}
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *memProductRepo) FindLowStock(ctx context.Context) ([]models.Product, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Product{}
	for _, p := range all {
		if p.Amount < p.MinStock {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.items[p.ID] = *p
	out := *p
	return &out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	r.items[p.ID] = *p
	out := *p
	return &out, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.items, id)
	return &p, nil
}

type memPromotionRepo struct {
	mu    sync.Mutex
	items map[string]models.Promotion
}

func newMemPromotionRepo() *memPromotionRepo {
	return &memPromotionRepo{items: map[string]models.Promotion{}}
}

func (r *memPromotionRepo) FindAll(context.Context) ([]models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Promotion{}
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPromotionRepo) FindByID(_ context.Context, id string) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *memPromotionRepo) FindActive(ctx context.Context) ([]models.Promotion, error) {
	all, _ := r.FindAll(ctx)
	out := []models.Promotion{}
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPromotionRepo) Create(_ context.Context, p *models.Promotion) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.items[p.ID] = *p
	out := *p
	return &out, nil
}

func (r *memPromotionRepo) Update(_ context.Context, p *models.Promotion, active *bool) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[p.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	updated := *p
	updated.Active = existing.Active
	if active != nil {
		updated.Active = *active
	}
	r.items[p.ID] = updated
	return &updated, nil
}

func (r *memPromotionRepo) ToggleActive(_ context.Context, id string) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.Active = !p.Active
	r.items[id] = p
	return &p, nil
}

func (r *memPromotionRepo) Delete(_ context.Context, id string) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.items, id)
	return &p, nil
}

type memSaleRepo struct {
	items map[string]models.Sale
}

func newMemSaleRepo() *memSaleRepo { return &memSaleRepo{items: map[string]models.Sale{}} }

func (r *memSaleRepo) FindAll(context.Context) ([]models.Sale, error) {
	out := []models.Sale{}
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, nil
}

func (r *memSaleRepo) FindByID(_ context.Context, id string) (*models.Sale, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (r *memSaleRepo) Create(_ context.Context, s *models.Sale) (*models.Sale, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	r.items[s.ID] = *s
	out := *s
	return &out, nil
}

func (r *memSaleRepo) Delete(_ context.Context, id string) (*models.Sale, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.items, id)
	return &s, nil
}

type memReportRepo struct {
	items map[string]models.Report
}

func newMemReportRepo() *memReportRepo { return &memReportRepo{items: map[string]models.Report{}} }

func (r *memReportRepo) FindAll(context.Context) ([]models.Report, error) {
	out := []models.Report{}
	for _, rp := range r.items {
		out = append(out, rp)
	}
	return out, nil
}

func (r *memReportRepo) FindByID(_ context.Context, id string) (*models.Report, error) {
	rp, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &rp, nil
}

func (r *memReportRepo) Create(_ context.Context, rp *models.Report) (*models.Report, error) {
	if rp.ID == "" {
		rp.ID = uuid.NewString()
	}
	r.items[rp.ID] = *rp
	out := *rp
	return &out, nil
}

func (r *memReportRepo) Delete(_ context.Context, id string) (*models.Report, error) {
	rp, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.items, id)
	return &rp, nil
}

type memProfileRepo struct {
	items     map[string]models.Profile
	createErr error
	deleteErr error
}

func newMemProfileRepo() *memProfileRepo { return &memProfileRepo{items: map[string]models.Profile{}} }

func (r *memProfileRepo) FindAll(context.Context) ([]models.Profile, error) {
	out := []models.Profile{}
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProfileRepo) FindByUserID(_ context.Context, id string) (*models.Profile, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *memProfileRepo) Create(_ context.Context, _ database.Executor, p *models.Profile) (*models.Profile, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.items {
		if existing.Email == p.Email {
			return nil, repositories.ErrDuplicateKey
		}
	}
	r.items[p.UserID] = *p
	out := *p
	return &out, nil
}

func (r *memProfileRepo) Update(_ context.Context, _ database.Executor, id string, role *string, active *bool) (*models.Profile, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if role != nil {
		p.Role = *role
	}
	if active != nil {
		p.Active = *active
	}
	r.items[id] = p
	return &p, nil
}

func (r *memProfileRepo) Delete(_ context.Context, _ database.Executor, id string) (*models.Profile, error) {
	if r.deleteErr != nil {
		return nil, r.deleteErr
	}
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.items, id)
	return &p, nil
}

// fakeProvider is a hosted-style provider: no transaction support.
type fakeProvider struct {
	serviceRole bool
	identities  map[string]models.Identity
	passwords   map[string]string
	pingErr     error
	deleted     []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{serviceRole: true, identities: map[string]models.Identity{}, passwords: map[string]string{}}
}

func (p *fakeProvider) Name() string      { return identity.ProviderSupabase }
func (p *fakeProvider) ServiceRole() bool { return p.serviceRole }

func (p *fakeProvider) CreateIdentity(_ context.Context, email, password string) (*models.Identity, error) {
	for _, ident := range p.identities {
		if ident.Email == email {
			return nil, identity.ErrEmailTaken
		}
	}
	ident := models.Identity{ID: uuid.NewString(), Email: email}
	p.identities[ident.ID] = ident
	p.passwords[email] = password
	return &ident, nil
}

func (p *fakeProvider) DeleteIdentity(_ context.Context, id string) error {
	if _, ok := p.identities[id]; !ok {
		return identity.ErrIdentityNotFound
	}
	delete(p.identities, id)
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *fakeProvider) Authenticate(_ context.Context, email, password string) (*models.Identity, error) {
	for _, ident := range p.identities {
		if ident.Email == email && p.passwords[email] == password {
			out := ident
			return &out, nil
		}
	}
	return nil, identity.ErrInvalidCredentials
}

func (p *fakeProvider) Ping(context.Context) error { return p.pingErr }

// fakeTxProvider behaves like the local provider: writes join the caller's transaction.
type fakeTxProvider struct {
	*fakeProvider
	txCreates int
}

func (p *fakeTxProvider) Name() string { return identity.ProviderLocal }

func (p *fakeTxProvider) CreateIdentityTx(ctx context.Context, _ database.Executor, email, password string) (*models.Identity, error) {
	p.txCreates++
	return p.CreateIdentity(ctx, email, password)
}

func (p *fakeTxProvider) DeleteIdentityTx(ctx context.Context, _ database.Executor, id string) error {
	return p.DeleteIdentity(ctx, id)
}

// fakeTx records transactions and rolls back the provider on failure.
type fakeTx struct {
	provider *fakeProvider
	txs      int
	rolled   int
	pingErr  error
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(tx database.Executor) error) error {
	f.txs++
	snapshot := map[string]models.Identity{}
	for k, v := range f.provider.identities {
		snapshot[k] = v
	}
	if err := fn(nil); err != nil {
		f.rolled++
		f.provider.identities = snapshot
		return err
	}
	return nil
}

func (f *fakeTx) Ping(context.Context) error { return f.pingErr }

var errBoom = errors.New("boom")
