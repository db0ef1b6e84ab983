// Package session keeps per-browser state on the server: the signed-in user and
// one-shot banner messages.
//
// Handlers never write the store directly. They read an immutable snapshot taken
// when the request arrived and record mutations; the middleware applies all of
// them in one store write just before the response header goes out.
package session

// User is the identity kept for a signed-in visitor.
type User struct {
	ID        uint   `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Handle    string `json:"usuario"`
}

// Data is the stored session record.
type Data struct {
	User           *User  `json:"user,omitempty"`
	SuccessMessage string `json:"successMessage,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// IsZero reports whether the record carries nothing worth storing.
func (d Data) IsZero() bool {
	return d.User == nil && d.SuccessMessage == "" && d.ErrorMessage == ""
}

func (d Data) clone() Data {
	if d.User != nil {
		u := *d.User
		d.User = &u
	}
	return d
}

// Flashes are the banner messages pending for the next render.
type Flashes struct {
	Success string
	Error   string
}

type mutation func(*Data)

// Session is the per-request view of one browser session.
type Session struct {
	id        string
	persisted bool
	snapshot  Data

	mutations []mutation
	writes    int
	renew     bool
	destroyed bool
}

// New returns a session with id whose stored state is data. persisted tells whether
// data came from the store.
func New(id string, data Data, persisted bool) *Session {
	return &Session{id: id, snapshot: data.clone(), persisted: persisted}
}

// ID returns the session id the request arrived with.
func (s *Session) ID() string {
	return s.id
}

// User returns the signed-in user as of the start of the request, or nil.
func (s *Session) User() *User {
	if s.snapshot.User == nil {
		return nil
	}
	u := *s.snapshot.User
	return &u
}

// Authenticated reports whether a user was signed in when the request arrived.
func (s *Session) Authenticated() bool {
	return s.snapshot.User != nil
}

// UserName returns the signed-in user's first name, or "".
func (s *Session) UserName() string {
	if s.snapshot.User == nil {
		return ""
	}
	return s.snapshot.User.FirstName
}

// SetUser signs u in. The session id is replaced at commit time.
func (s *Session) SetUser(u User) {
	s.renew = true
	s.record(func(d *Data) { d.User = &u })
}

// RefreshUser replaces the stored identity of an already signed-in user.
func (s *Session) RefreshUser(u User) {
	s.record(func(d *Data) { d.User = &u })
}

// SetSuccess queues a success banner.
func (s *Session) SetSuccess(msg string) {
	s.record(func(d *Data) { d.SuccessMessage = msg })
}

// SetError queues an error banner.
func (s *Session) SetError(msg string) {
	s.record(func(d *Data) { d.ErrorMessage = msg })
}

// Flashes returns the pending banners and clears them.
func (s *Session) Flashes() Flashes {
	f := Flashes{Success: s.snapshot.SuccessMessage, Error: s.snapshot.ErrorMessage}
	if f.Success != "" || f.Error != "" {
		s.mutations = append(s.mutations, func(d *Data) {
			d.SuccessMessage = ""
			d.ErrorMessage = ""
		})
	}
	return f
}

// Destroy ends the session. Mutations recorded so far are dropped.
func (s *Session) Destroy() {
	s.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (s *Session) Destroyed() bool {
	return s.destroyed
}

// Changed reports whether commit has anything to write.
func (s *Session) Changed() bool {
	return s.destroyed || len(s.mutations) > 0
}

// OnlyClearsFlashes reports whether consuming banners is the sole recorded change.
func (s *Session) OnlyClearsFlashes() bool {
	return !s.destroyed && !s.renew && s.writes == 0 && len(s.mutations) > 0
}

// Result applies the recorded mutations to a copy of the snapshot.
func (s *Session) Result() Data {
	data := s.snapshot.clone()
	for _, m := range s.mutations {
		m(&data)
	}
	return data
}

func (s *Session) record(m mutation) {
	s.writes++
	s.mutations = append(s.mutations, m)
}
