// Package session owns the locally persisted login state: the bearer
// token plus the identity fields that came with it, and a push token
// with an independent lifecycle. Everything lives in one small JSON
// document so a save is atomic at the file level.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"aptbill/client/internal/models"
)

type fileState struct {
	Session  *models.Session `json:"session"`
	FCMToken *string         `json:"fcm_token"`
}

// Snapshot is a point-in-time copy of the persisted state. Watchers
// receive one per change; absent values are nil.
type Snapshot struct {
	Session  *models.Session
	FCMToken *string
}

type Store struct {
	path string

	mu      sync.Mutex
	state   fileState
	subs    map[int]chan Snapshot
	nextSub int
}

// Open loads the store at path. A missing file is an empty store, not
// an error; values that were never written read back as absent.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		subs: make(map[int]chan Snapshot),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", path, err)
	}
	return s, nil
}

// SaveSession overwrites the login-derived fields in one write. A
// re-login simply lands here again with the new values.
func (s *Store) SaveSession(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Session
	s.state.Session = &sess
	if err := s.persistLocked(); err != nil {
		s.state.Session = prev
		return err
	}
	s.notifyLocked()
	return nil
}

// ClearSession removes the login-derived fields only. A saved push
// token stays put so a later login can re-register it.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Session
	s.state.Session = nil
	if err := s.persistLocked(); err != nil {
		s.state.Session = prev
		return err
	}
	s.notifyLocked()
	return nil
}

func (s *Store) SaveFCMToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.FCMToken
	s.state.FCMToken = &token
	if err := s.persistLocked(); err != nil {
		s.state.FCMToken = prev
		return err
	}
	s.notifyLocked()
	return nil
}

func (s *Store) ClearFCMToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.FCMToken
	s.state.FCMToken = nil
	if err := s.persistLocked(); err != nil {
		s.state.FCMToken = prev
		return err
	}
	s.notifyLocked()
	return nil
}

// Session returns a copy of the current session, if one is stored.
func (s *Store) Session() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Session == nil {
		return models.Session{}, false
	}
	return *s.state.Session, true
}

// Token is the one-shot read used when attaching auth to a single
// outgoing request.
func (s *Store) Token() (string, bool) {
	sess, ok := s.Session()
	if !ok {
		return "", false
	}
	return sess.Token, true
}

func (s *Store) Role() (models.Role, bool) {
	sess, ok := s.Session()
	if !ok {
		return "", false
	}
	return sess.Role, true
}

func (s *Store) Username() (string, bool) {
	sess, ok := s.Session()
	if !ok {
		return "", false
	}
	return sess.Username, true
}

func (s *Store) ApartmentID() (string, bool) {
	sess, ok := s.Session()
	if !ok || sess.ApartmentID == nil {
		return "", false
	}
	return *sess.ApartmentID, true
}

func (s *Store) FCMToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.FCMToken == nil {
		return "", false
	}
	return *s.state.FCMToken, true
}

// Watch returns a stream that yields the current snapshot immediately
// and a new one after every change, until ctx is cancelled. A slow
// consumer only ever sees the latest snapshot; intermediate ones are
// replaced, not queued.
func (s *Store) Watch(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}()

	return ch
}

func (s *Store) snapshotLocked() Snapshot {
	var snap Snapshot
	if s.state.Session != nil {
		sess := *s.state.Session
		snap.Session = &sess
	}
	if s.state.FCMToken != nil {
		tok := *s.state.FCMToken
		snap.FCMToken = &tok
	}
	return snap
}

func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale pending snapshot.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// persistLocked writes via a temp file and rename so a crash mid-write
// never leaves a torn document behind.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
