package services

import (
	"github.com/irondev/iron-dev-agent/internal/artifacts"
)

// LegacyFiles is the flat-file mirror kept for clients that predate
// authentication. Writes to it are best-effort.
type LegacyFiles interface {
	Create(id string) error
	Delete(id string) error
	Exists(id string) bool
	Read(id string, slot artifacts.Slot) (string, error)
	Write(id string, slot artifacts.Slot, content string) error
}
