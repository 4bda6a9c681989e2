package store

import (
	"context"
	"errors"

	"github.com/levelup-life/levelup-service/internal/progression"
)

// Document names. They mirror the storage keys used by earlier clients so an
// existing save can be imported as-is.
const (
	ProfileDocument    = "levelup_user"
	ChallengesDocument = "levelup_challenges"
)

// ErrNotFound indicates a document has never been written.
var ErrNotFound = errors.New("document not found")

// Store is the durable persistence adapter: two named JSON documents, written
// through after every mutation.
//
// Load methods return defaults when no prior state exists. When a stored
// document cannot be decoded they return the defaults together with the decode
// error, so the caller can log the corruption and keep starting up.
type Store interface {
	LoadProfile(ctx context.Context) (progression.Profile, error)
	SaveProfile(ctx context.Context, p progression.Profile) error
	LoadChallenges(ctx context.Context) ([]progression.Challenge, error)
	SaveChallenges(ctx context.Context, list []progression.Challenge) error
	Close() error
}

// documentStore is the raw byte-level backend shared by every Store
// implementation; each backend only supplies get/put for named documents.
type documentStore interface {
	get(ctx context.Context, name string) ([]byte, error)
	put(ctx context.Context, name string, body []byte) error
	Close() error
}

// docStoreAdapter lifts a documentStore into the typed Store interface.
type docStoreAdapter struct {
	docs documentStore
}

func newStore(docs documentStore) Store {
	return &docStoreAdapter{docs: docs}
}

func (s *docStoreAdapter) LoadProfile(ctx context.Context) (progression.Profile, error) {
	body, err := s.docs.get(ctx, ProfileDocument)
	if errors.Is(err, ErrNotFound) {
		return progression.DefaultProfile(), nil
	}
	if err != nil {
		return progression.DefaultProfile(), err
	}
	return DecodeProfile(body)
}

func (s *docStoreAdapter) SaveProfile(ctx context.Context, p progression.Profile) error {
	body, err := EncodeProfile(p)
	if err != nil {
		return err
	}
	return s.docs.put(ctx, ProfileDocument, body)
}

func (s *docStoreAdapter) LoadChallenges(ctx context.Context) ([]progression.Challenge, error) {
	body, err := s.docs.get(ctx, ChallengesDocument)
	if errors.Is(err, ErrNotFound) {
		return []progression.Challenge{}, nil
	}
	if err != nil {
		return []progression.Challenge{}, err
	}
	return DecodeChallenges(body)
}

func (s *docStoreAdapter) SaveChallenges(ctx context.Context, list []progression.Challenge) error {
	body, err := EncodeChallenges(list)
	if err != nil {
		return err
	}
	return s.docs.put(ctx, ChallengesDocument, body)
}

func (s *docStoreAdapter) Close() error {
	return s.docs.Close()
}
