package activity

import (
	"database/sql"
	"time"
)

type Action string

const (
	ActionUpload Action = "upload"
	ActionEdit   Action = "edit"
	ActionRename Action = "rename"
	ActionDelete Action = "delete"
)

type Store struct {
	db *sql.DB
}

// Event is one mutation attempted through the web interface. Outcome is
// "ok" or the kind of error the folder store reported.
type Event struct {
	Id         string
	Action     Action
	Name       string
	NewName    string
	Outcome    string
	RemoteAddr string
	CreatedAt  time.Time
}

func (e Event) Ok() bool {
	return e.Outcome == "ok"
}
