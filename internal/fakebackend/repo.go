package fakebackend

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/internal/utils"
	"github.com/jrsteele09/nuur-client/paths"
	"github.com/jrsteele09/nuur-client/users"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user         users.User
	passwordHash []byte
}

type pathRecord struct {
	path   paths.Path
	points []paths.RecordedPoint
}

// Repo is the in-memory data store behind the dev backend.
type Repo struct {
	accounts map[string]*account // user id to account
	emailIDs map[string]string   // email to user id
	contacts map[string][]users.Contact
	paths    map[string]*pathRecord
	shares   map[string]paths.ShareLink // share token to link

	nextPoint int64
	lock      sync.RWMutex
}

func NewRepo() *Repo {
	return &Repo{
		accounts: make(map[string]*account),
		emailIDs: make(map[string]string),
		contacts: make(map[string][]users.Contact),
		paths:    make(map[string]*pathRecord),
		shares:   make(map[string]paths.ShareLink),
	}
}

func (r *Repo) CreateUser(reg users.Registration) (users.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return users.User{}, errors.Wrapf(err, "CreateUser hash password")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.emailIDs[reg.Email]; ok {
		return users.User{}, errors.Wrapf(errors.ErrAlreadyExists, "email %s", reg.Email)
	}
	u := users.User{
		ID:                uuid.New().String(),
		Email:             reg.Email,
		PhoneNumber:       reg.PhoneNumber,
		FirstName:         reg.FirstName,
		LastName:          reg.LastName,
		PreferredLanguage: reg.PreferredLanguage,
		IsActive:          true,
	}
	if u.PreferredLanguage == "" {
		u.PreferredLanguage = "en"
	}
	r.accounts[u.ID] = &account{user: u, passwordHash: hash}
	r.emailIDs[u.Email] = u.ID
	return u, nil
}

// Authenticate returns the user owning email when password matches.
func (r *Repo) Authenticate(email, password string) (users.User, error) {
	r.lock.RLock()
	acc, ok := r.accounts[r.emailIDs[email]]
	r.lock.RUnlock()

	if !ok {
		return users.User{}, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return users.User{}, errors.ErrInvalidCredentials
	}
	if !acc.user.IsActive {
		return users.User{}, errors.Wrapf(errors.ErrForbidden, "account disabled")
	}
	return *acc.user.Clone(), nil
}

func (r *Repo) GetUser(id string) (users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return users.User{}, errors.Wrapf(errors.ErrNotFound, "user %s", id)
	}
	return *acc.user.Clone(), nil
}

func (r *Repo) UpdateUser(id string, u users.ProfileUpdate) (users.User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return users.User{}, errors.Wrapf(errors.ErrNotFound, "user %s", id)
	}
	acc.user = acc.user.Apply(u.AsPatch())
	return *acc.user.Clone(), nil
}

func (r *Repo) ListContacts(userID string) []users.Contact {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := append([]users.Contact{}, r.contacts[userID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

func (r *Repo) AddContact(userID string, nc users.NewContact) users.Contact {
	r.lock.Lock()
	defer r.lock.Unlock()

	c := users.Contact{
		ID:               uuid.New().String(),
		UserID:           userID,
		ContactName:      nc.ContactName,
		PhoneNumber:      nc.PhoneNumber,
		Email:            nc.Email,
		RelationshipType: nc.RelationshipType,
		Priority:         nc.Priority,
		IsActive:         true,
		CreatedAt:        NowTimeFunc().UTC(),
	}
	if c.Priority == 0 {
		c.Priority = 1
	}
	r.contacts[userID] = append(r.contacts[userID], c)
	return c
}

func (r *Repo) UpdateContact(userID, contactID string, u users.ContactUpdate) (users.Contact, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for i, c := range r.contacts[userID] {
		if c.ID != contactID {
			continue
		}
		c.ContactName = utils.Merge(c.ContactName, u.ContactName)
		c.PhoneNumber = utils.Merge(c.PhoneNumber, u.PhoneNumber)
		c.Priority = utils.Merge(c.Priority, u.Priority)
		c.IsActive = utils.Merge(c.IsActive, u.IsActive)
		if u.Email != nil {
			c.Email = u.Email
		}
		if u.RelationshipType != nil {
			c.RelationshipType = u.RelationshipType
		}
		r.contacts[userID][i] = c
		return c, nil
	}
	return users.Contact{}, errors.Wrapf(errors.ErrNotFound, "contact %s", contactID)
}

func (r *Repo) DeleteContact(userID, contactID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	list := r.contacts[userID]
	for i, c := range list {
		if c.ID == contactID {
			r.contacts[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(errors.ErrNotFound, "contact %s", contactID)
}

func (r *Repo) StartPath(userID string, s paths.Start) paths.Path {
	r.lock.Lock()
	defer r.lock.Unlock()

	now := NowTimeFunc().UTC()
	p := paths.Path{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        s.Name,
		Description: s.Description,
		StartTime:   now,
		IsActive:    true,
		CreatedAt:   now,
	}
	if s.PathType != "" {
		p.PathType = utils.Ptr(s.PathType)
	}
	r.paths[p.ID] = &pathRecord{path: p}
	return p
}

// owned returns the path only when userID owns it. Callers hold the lock.
func (r *Repo) owned(userID, pathID string) (*pathRecord, error) {
	rec, ok := r.paths[pathID]
	if !ok || rec.path.UserID != userID {
		return nil, errors.Wrapf(errors.ErrNotFound, "path %s", pathID)
	}
	return rec, nil
}

// StopPath ends recording and computes distance and average speed.
func (r *Repo) StopPath(userID, pathID string) (paths.Path, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	rec, err := r.owned(userID, pathID)
	if err != nil {
		return paths.Path{}, err
	}
	if !rec.path.IsActive {
		return paths.Path{}, errors.Invalidf("path is not active")
	}

	end := NowTimeFunc().UTC()
	rec.path.EndTime = &end
	rec.path.IsActive = false

	pts := make([]paths.Point, len(rec.points))
	for i, p := range rec.points {
		pts[i] = p.Point
	}
	dist := paths.TotalDistance(pts)
	rec.path.TotalDistanceMeters = &dist
	if secs := end.Sub(rec.path.StartTime).Seconds(); secs > 0 {
		rec.path.AverageSpeedMPS = utils.Ptr(dist / secs)
	}
	return rec.path, nil
}

func (r *Repo) AddPoints(userID, pathID string, points []paths.Point) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	rec, err := r.owned(userID, pathID)
	if err != nil {
		return 0, err
	}
	if !rec.path.IsActive {
		return 0, errors.Invalidf("path is not active")
	}
	for _, p := range points {
		if p.Timestamp.IsZero() {
			p.Timestamp = NowTimeFunc().UTC()
		}
		r.nextPoint++
		rec.points = append(rec.points, paths.RecordedPoint{ID: r.nextPoint, Point: p})
	}
	return len(points), nil
}

// ListPaths returns the user's paths, newest first.
func (r *Repo) ListPaths(userID string, limit, skip int) []paths.Path {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]paths.Path, 0)
	for _, rec := range r.paths {
		if rec.path.UserID == userID {
			out = append(out, rec.path)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})

	if skip >= len(out) {
		return []paths.Path{}
	}
	out = out[skip:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (r *Repo) GetPath(userID, pathID string) (paths.Detail, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	rec, err := r.owned(userID, pathID)
	if err != nil {
		return paths.Detail{}, err
	}
	return detail(rec), nil
}

func (r *Repo) UpdatePath(userID, pathID string, u paths.Update) (paths.Path, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	rec, err := r.owned(userID, pathID)
	if err != nil {
		return paths.Path{}, err
	}
	if u.Name != nil {
		rec.path.Name = u.Name
	}
	if u.Description != nil {
		rec.path.Description = u.Description
	}
	return rec.path, nil
}

func (r *Repo) DeletePath(userID, pathID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, err := r.owned(userID, pathID); err != nil {
		return err
	}
	delete(r.paths, pathID)
	for token, link := range r.shares {
		if link.PathID == pathID {
			delete(r.shares, token)
		}
	}
	return nil
}

func (r *Repo) SharePath(userID, pathID string, s paths.Share) (paths.ShareLink, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, err := r.owned(userID, pathID); err != nil {
		return paths.ShareLink{}, err
	}
	now := NowTimeFunc().UTC()
	link := paths.ShareLink{
		ID:         uuid.New().String(),
		PathID:     pathID,
		ShareToken: uuid.New().String(),
		ExpiresAt:  utils.Ptr(now.Add(time.Duration(s.ExpiresInHours) * time.Hour)),
		CreatedAt:  now,
	}
	r.shares[link.ShareToken] = link
	return link, nil
}

// SharedPath resolves a share token, rejecting expired links.
func (r *Repo) SharedPath(token string) (paths.Detail, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	link, ok := r.shares[token]
	if !ok {
		return paths.Detail{}, errors.Wrapf(errors.ErrNotFound, "share %s", token)
	}
	if link.ExpiresAt != nil && link.ExpiresAt.Before(NowTimeFunc()) {
		return paths.Detail{}, errors.Wrapf(errors.ErrNotFound, "share %s expired", token)
	}
	rec, ok := r.paths[link.PathID]
	if !ok {
		return paths.Detail{}, errors.Wrapf(errors.ErrNotFound, "path %s", link.PathID)
	}
	return detail(rec), nil
}

func detail(rec *pathRecord) paths.Detail {
	return paths.Detail{
		Path:   rec.path,
		Points: append([]paths.RecordedPoint{}, rec.points...),
	}
}
