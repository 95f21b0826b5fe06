package models

// User is the teacher profile as returned by the backend. Only the fields
// the agent actually displays are typed; anything else the backend sends
// is dropped on decode.
type User struct {
	ID       int    `json:"id,omitempty" yaml:"id,omitempty"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	FullName string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	School   string `json:"school,omitempty" yaml:"school,omitempty"`
	Subject  string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if len(u.FullName) > 0 {
		return u.FullName
	}
	return u.Username
}

// LocalSession is the durable record the session store writes to disk.
// Token and user are always persisted as a pair.
type LocalSession struct {
	Version int    `json:"version,omitempty" yaml:"version"`
	Token   string `json:"token,omitempty" yaml:"token"`
	User    *User  `json:"user,omitempty" yaml:"user,omitempty"`
}

func (s *LocalSession) IsAuthenticated() bool {
	return s != nil && len(s.Token) > 0
}
