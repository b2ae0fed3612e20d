package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	passwordservice "github.com/mikiasgoitom/TakeTravel/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/TakeTravel/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/validator"
	"github.com/mikiasgoitom/TakeTravel/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// memStore is an in-memory implementation of every repository contract.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	packages map[string]*entity.Package
	bookings map[string]*entity.Booking
	tokens   map[string]*entity.Token
	contacts []*entity.Contact

	statusWrites []entity.BookingStatus
	// afterBookingRead runs outside the lock after GetBookingByID reads.
	afterBookingRead func()
	failNextWith     error
}

var (
	_ contract.IUserRepository    = (*memStore)(nil)
	_ contract.IPackageRepository = (*memStore)(nil)
	_ contract.IBookingRepository = (*memStore)(nil)
	_ contract.ITokenRepository   = (*memStore)(nil)
	_ contract.IContactRepository = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*entity.User{},
		packages: map[string]*entity.Package{},
		bookings: map[string]*entity.Booking{},
		tokens:   map[string]*entity.Token{},
	}
}

func (s *memStore) takeFailure() error {
	err := s.failNextWith
	s.failNextWith = nil
	return err
}

func notFound(what string) error {
	return apperror.NotFound("No " + what + " found with that ID")
}

// ---- users ----

func (s *memStore) CreateUser(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return apperror.Conflict("a user with that value already exists")
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || !u.Active {
		return nil, notFound("user")
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) GetAnyUserByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user")
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == email && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user")
}

func (s *memStore) ListUsers(_ context.Context, f contract.UserFilter) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.User{}
	for _, u := range s.users {
		if !u.Active {
			continue
		}
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		if f.OnlyVerified && !u.Verified {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) UpdateUser(_ context.Context, u *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return nil, notFound("user")
	}
	cp := *u
	cp.ClearGuideFields()
	s.users[u.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memStore) UpdateUserPassword(_ context.Context, id, hash string, changedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return notFound("user")
	}
	u.PasswordHash = hash
	u.PasswordChangedAt = &changedAt
	return nil
}

func (s *memStore) SetVerified(_ context.Context, id string, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return notFound("user")
	}
	u.Verified = verified
	return nil
}

func (s *memStore) SetActive(_ context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return notFound("user")
	}
	u.Active = active
	return nil
}

// ---- packages ----

func (s *memStore) CreatePackage(_ context.Context, p *entity.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.packages {
		if existing.Name == p.Name {
			return apperror.Conflict("a package with that value already exists")
		}
	}
	cp := *p
	s.packages[p.ID] = &cp
	return nil
}

func (s *memStore) GetPackageByID(_ context.Context, id string) (*entity.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.packages[id]
	if !ok {
		return nil, notFound("package")
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) ListActivePackages(_ context.Context, f entity.PackageFilter) ([]*entity.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	out := []*entity.Package{}
	for _, p := range s.packages {
		if !p.IsActive {
			continue
		}
		if f.Difficulty != nil && p.Difficulty != *f.Difficulty {
			continue
		}
		if f.Destination != nil && !strings.Contains(strings.ToLower(p.Destination), strings.ToLower(*f.Destination)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) ReplacePackage(_ context.Context, p *entity.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packages[p.ID]; !ok {
		return notFound("package")
	}
	for id, existing := range s.packages {
		if id != p.ID && existing.Name == p.Name {
			return apperror.Conflict("a package with that value already exists")
		}
	}
	cp := *p
	s.packages[p.ID] = &cp
	return nil
}

func (s *memStore) SetPackageActive(_ context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.packages[id]
	if !ok {
		return notFound("package")
	}
	p.IsActive = active
	return nil
}

func (s *memStore) DeletePackage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packages[id]; !ok {
		return notFound("package")
	}
	delete(s.packages, id)
	return nil
}

// ---- bookings ----

func (s *memStore) CreateBooking(_ context.Context, b *entity.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memStore) GetBookingByID(_ context.Context, id string) (*entity.Booking, error) {
	s.mu.Lock()
	b, ok := s.bookings[id]
	var cp entity.Booking
	if ok {
		cp = *b
	}
	gate := s.afterBookingRead
	s.mu.Unlock()

	if !ok {
		return nil, notFound("booking")
	}
	if gate != nil {
		gate()
	}
	return &cp, nil
}

func (s *memStore) expand(b *entity.Booking) *entity.BookingDetail {
	d := &entity.BookingDetail{Booking: *b}
	if p, ok := s.packages[b.PackageID]; ok {
		d.Package = &entity.PackageSummary{ID: p.ID, Name: p.Name, Price: p.Price, Duration: p.Duration}
	}
	if u, ok := s.users[b.UserID]; ok {
		d.User = &entity.PartySummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	if b.GuideID != nil {
		if g, ok := s.users[*b.GuideID]; ok {
			d.Guide = &entity.PartySummary{ID: g.ID, Name: g.Name, Email: g.Email}
		}
	}
	return d
}

func (s *memStore) GetBookingDetail(_ context.Context, id string) (*entity.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return s.expand(b), nil
}

func (s *memStore) ListBookings(_ context.Context, q contract.BookingQuery) ([]*entity.BookingDetail, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*entity.Booking
	for _, b := range s.bookings {
		if q.UserID != "" && b.UserID != q.UserID {
			continue
		}
		if q.GuideID != "" && (b.GuideID == nil || *b.GuideID != q.GuideID) {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if q.PageSize > 0 {
		start := (q.Page - 1) * q.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + q.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	out := make([]*entity.BookingDetail, 0, len(matched))
	for _, b := range matched {
		out = append(out, s.expand(b))
	}
	return out, total, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id string, status entity.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return notFound("booking")
	}
	b.Status = status
	s.statusWrites = append(s.statusWrites, status)
	return nil
}

func (s *memStore) AssignGuide(_ context.Context, id, guideID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return notFound("booking")
	}
	g := guideID
	b.GuideID = &g
	b.Status = entity.BookingStatusConfirmed
	s.statusWrites = append(s.statusWrites, entity.BookingStatusConfirmed)
	return nil
}

func (s *memStore) CompleteElapsed(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, b := range s.bookings {
		if b.Status == entity.BookingStatusConfirmed && b.EndDate.Before(now) {
			b.Status = entity.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

func (s *memStore) bookingStatus(id string) entity.BookingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id].Status
}

// ---- tokens ----

func (s *memStore) CreateToken(_ context.Context, t *entity.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tokens[t.ID] = &cp
	return nil
}

func (s *memStore) GetTokenByVerifier(_ context.Context, verifier string) (*entity.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.Verifier == verifier {
			cp := *t
			return &cp, nil
		}
	}
	return nil, notFound("token")
}

func (s *memStore) RevokeToken(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[id]
	if !ok {
		return notFound("token")
	}
	t.Revoked = true
	return nil
}

func (s *memStore) ConsumeToken(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[id]
	if !ok || t.Revoked {
		return notFound("token")
	}
	t.Revoked = true
	return nil
}

func (s *memStore) RevokeAllTokensForUser(_ context.Context, userID string, tokenType entity.TokenType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.UserID == userID && t.TokenType == tokenType {
			t.Revoked = true
		}
	}
	return nil
}

// ---- contacts ----

func (s *memStore) CreateContact(_ context.Context, c *entity.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	cp := *c
	s.contacts = append(s.contacts, &cp)
	return nil
}

func (s *memStore) ListContacts(_ context.Context) ([]*entity.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Contact{}, s.contacts...), nil
}

// ---- services ----

type memCache struct {
	packages    []*entity.Package
	hit         bool
	reads       int
	writes      int
	invalidated int
}

func (c *memCache) GetActivePackages(context.Context) ([]*entity.Package, bool, error) {
	c.reads++
	return c.packages, c.hit, nil
}

func (c *memCache) SetActivePackages(_ context.Context, p []*entity.Package) error {
	c.writes++
	c.packages, c.hit = p, true
	return nil
}

func (c *memCache) InvalidateActivePackages(context.Context) error {
	c.invalidated++
	c.packages, c.hit = nil, false
	return nil
}

type sentMail struct{ To, Subject, Body string }

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

// fakeJWT issues "token:<userID>:<unix iat>" and parses it back.
type fakeJWT struct {
	now    func() time.Time
	expiry time.Duration
}

func (j *fakeJWT) GenerateToken(userID string, role entity.UserRole) (string, time.Time, error) {
	iat := j.now()
	return "token|" + userID + "|" + string(role) + "|" + iat.Format(time.RFC3339), iat.Add(j.expiry), nil
}

func (j *fakeJWT) ParseToken(token string) (*entity.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "token" {
		return nil, errors.New("invalid token")
	}
	iat, err := time.Parse(time.RFC3339, parts[3])
	if err != nil {
		return nil, err
	}
	if j.now().After(iat.Add(j.expiry)) {
		return nil, errors.New("token has expired")
	}
	c := &entity.Claims{UserID: parts[1], Role: entity.UserRole(parts[2])}
	c.IssuedAt = jwt.NewNumericDate(iat)
	return c, nil
}

type fakeConfig struct {
	sendActivation bool
}

func (c *fakeConfig) GetAppBaseURL() string                          { return "http://localhost:8080" }
func (c *fakeConfig) GetSendActivationEmail() bool                   { return c.sendActivation }
func (c *fakeConfig) GetTokenExpiry() time.Duration                  { return 2400 * time.Hour }
func (c *fakeConfig) GetPasswordResetTokenExpiry() time.Duration     { return 10 * time.Minute }
func (c *fakeConfig) GetEmailVerificationTokenExpiry() time.Duration { return 24 * time.Hour }
func (c *fakeConfig) IsDevelopment() bool                            { return false }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}

type recordedMetrics struct {
	mu          sync.Mutex
	created     int
	transitions []string
	assigned    int
	loginFails  int
}

func (m *recordedMetrics) BookingCreated() { m.mu.Lock(); m.created++; m.mu.Unlock() }
func (m *recordedMetrics) StatusChanged(from, to entity.BookingStatus) {
	m.mu.Lock()
	m.transitions = append(m.transitions, string(from)+"->"+string(to))
	m.mu.Unlock()
}
func (m *recordedMetrics) GuideAssigned() { m.mu.Lock(); m.assigned++; m.mu.Unlock() }
func (m *recordedMetrics) LoginFailed()   { m.mu.Lock(); m.loginFails++; m.mu.Unlock() }

// clock is a settable time source shared by usecases and fakes.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// harness wires every usecase to the in-memory store.
type harness struct {
	store    *memStore
	cfg      *fakeConfig
	mailer   *fakeMailer
	clock    *clock
	metrics  *recordedMetrics
	hasher   *passwordservice.Hasher
	users    *usecase.UserUsecase
	guides   *usecase.GuideUsecase
	packages *usecase.PackageUsecase
	bookings *usecase.BookingUsecase
	contacts *usecase.ContactUsecase
	emails   *usecase.EmailVerificationUseCase
}

func newHarness() *harness {
	store := newMemStore()
	mailer := &fakeMailer{}
	clk := &clock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	metrics := &recordedMetrics{}
	hasher := passwordservice.NewHasherWithCost(4)
	v := validator.NewValidator()
	ids := uuidgen.NewGenerator()
	rnd := randomgenerator.NewRandomGenerator()
	cfg := &fakeConfig{}
	log := nopLogger{}
	jwtSvc := &fakeJWT{now: clk.Now, expiry: cfg.GetTokenExpiry()}

	emails := usecase.NewEmailVerificationUseCase(store, store, mailer, hasher, rnd, ids, cfg, log)
	emails.SetClock(clk.Now)
	users := usecase.NewUserUsecase(store, store, emails, hasher, jwtSvc, mailer, log, cfg, v, ids, rnd)
	users.SetClock(clk.Now)
	users.SetMetrics(metrics)
	packages := usecase.NewPackageUsecase(store, v, ids, log)
	bookings := usecase.NewBookingUsecase(store, store, store, ids, log)
	bookings.SetClock(clk.Now)
	bookings.SetMetrics(metrics)

	return &harness{
		store:    store,
		cfg:      cfg,
		mailer:   mailer,
		clock:    clk,
		metrics:  metrics,
		hasher:   hasher,
		users:    users,
		guides:   usecase.NewGuideUsecase(store, log),
		packages: packages,
		bookings: bookings,
		contacts: usecase.NewContactUsecase(store, v, ids, log),
		emails:   emails,
	}
}

func (h *harness) emailsConfig(sendActivation bool) {
	h.cfg.sendActivation = sendActivation
}

var _ usecasecontract.IConfigProvider = (*fakeConfig)(nil)
var _ usecase.JWTService = (*fakeJWT)(nil)
