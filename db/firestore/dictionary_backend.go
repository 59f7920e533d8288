package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/jacobpatterson1549/selene-bananas/db"
)

const wordsCollectionName = "words"

// DictionaryBackend checks word validity against a firestore collection,
// satisfying engine.Lexicon. It is a read-only view: words are expected to
// be loaded into the collection out of band.
type DictionaryBackend struct {
	client *firestore.Client
	db.Config
	// Ctx is used for the Check calls the engine.Lexicon interface makes
	// without a context of its own.
	Ctx context.Context
}

func (db *DictionaryBackend) wordsCollection() *firestore.CollectionRef {
	return db.client.Collection("services").Doc("selene-bananas").Collection(wordsCollectionName)
}

// NewDictionaryBackend creates a backend that checks words against the
// words collection of the project identified by projectID.
func NewDictionaryBackend(ctx context.Context, cfg db.Config, projectID string) (*DictionaryBackend, error) {
	client, err := firestore.NewClient(ctx, projectID) // do not timeout context - the client is used by the backend
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	d := DictionaryBackend{
		client: client,
		Config: cfg,
		Ctx:    ctx,
	}
	return &d, nil
}

// Check reports whether the lowercased word has a document in the words
// collection. Any lookup error, including "not found", is treated as the
// word being invalid.
func (db *DictionaryBackend) Check(word string) bool {
	ctx, cancelFunc := context.WithTimeout(db.Ctx, db.QueryPeriod)
	defer cancelFunc()
	lowerWord := strings.ToLower(word)
	docRef := db.wordsCollection().Doc(lowerWord)
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		return false
	}
	return snapshot.Exists()
}
