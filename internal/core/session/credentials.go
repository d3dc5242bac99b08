// Package session contains the identity rules for logging in: the static
// credential table and subject construction.
package session

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the access level of an authenticated subject.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Subject is the authenticated session principal.
type Subject struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       Role      `json:"role"`
	LastLogin  time.Time `json:"lastLogin"`
	Department string    `json:"department,omitempty"`
	FullName   string    `json:"fullName,omitempty"`
}

// Credential pairs a bcrypt password hash with the subject template it unlocks.
type Credential struct {
	PasswordHash []byte
	Subject      Subject
}

// CredentialTable maps usernames to credentials.
type CredentialTable map[string]Credential

type account struct {
	password string
	subject  Subject
}

var demoAccounts = []account{
	{
		password: "admin123",
		subject: Subject{
			ID:         "1",
			Username:   "admin",
			Role:       RoleAdmin,
			Department: "Command",
			FullName:   "Amaan Husain",
		},
	},
	{
		password: "operator123",
		subject: Subject{
			ID:         "2",
			Username:   "operator",
			Role:       RoleOperator,
			Department: "Operations",
			FullName:   "Agent John Wick",
		},
	},
}

// DemoCredentials builds the built-in table of the two demo accounts.
// Passwords are hashed once here; only the hashes are kept.
func DemoCredentials() (CredentialTable, error) {
	table := make(CredentialTable, len(demoAccounts))
	for _, a := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		table[a.subject.Username] = Credential{PasswordHash: hash, Subject: a.subject}
	}
	return table, nil
}

// Authenticate checks username and password against the table. On success it
// returns the subject with LastLogin set to now. Unknown usernames and wrong
// passwords both return false.
func (t CredentialTable) Authenticate(username, password string, now time.Time) (Subject, bool) {
	cred, ok := t[username]
	if !ok {
		return Subject{}, false
	}
	if bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)) != nil {
		return Subject{}, false
	}

	subject := cred.Subject
	subject.LastLogin = now
	return subject, true
}
