// Package mongodb stores translation records as MongoDB documents.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"voci/internal/domain"
	"voci/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WordIndexName is the unique index on word and language
const WordIndexName = "word_lang_unique"

type translationDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Word            string             `bson:"word"`
	Lang            string             `bson:"lang"`
	Translations    []string           `bson:"translations"`
	TranslationLang string             `bson:"translation_lang"`
}

// TranslationRepo implements repository.TranslationRepository
type TranslationRepo struct {
	coll *mongo.Collection
}

// NewTranslationRepo creates a repository over the given collection
func NewTranslationRepo(coll *mongo.Collection) *TranslationRepo {
	return &TranslationRepo{coll: coll}
}

// EnsureIndexes creates the unique word index if missing
func (r *TranslationRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "word", Value: 1}, {Key: "lang", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(WordIndexName),
	})
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", WordIndexName, err)
	}
	return nil
}

// Create inserts a record under a new ObjectID
func (r *TranslationRepo) Create(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error) {
	if tr.ID().IsPresent() {
		return nil, fmt.Errorf("%w: record already has id %q", repository.ErrInvalidData, tr.ID())
	}

	doc := toDocument(tr)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", repository.ErrConflict, err)
		}
		return nil, err
	}

	return tr.WithID(domain.NewTranslationID(doc.ID.Hex())), nil
}

// ReadByWord finds the document matching word text and language
func (r *TranslationRepo) ReadByWord(ctx context.Context, word domain.Word) (*domain.TranslationRecord, error) {
	filter := bson.M{"word": word.Text(), "lang": word.Lang().String()}

	var doc translationDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return toRecord(doc)
}

// Update sets the translations of the document with the record id
func (r *TranslationRepo) Update(ctx context.Context, tr *domain.TranslationRecord) (*domain.TranslationRecord, error) {
	oid, err := parseObjectID(tr.ID())
	if err != nil {
		return nil, err
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"translations": tr.Translations()}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}

	return tr.Clone(), nil
}

// Delete removes the document with the given id
func (r *TranslationRepo) Delete(ctx context.Context, id domain.TranslationID) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func parseObjectID(id domain.TranslationID) (primitive.ObjectID, error) {
	value, ok := id.Value()
	if !ok {
		return primitive.NilObjectID, repository.ErrBadID
	}

	oid, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", repository.ErrBadID, err)
	}
	return oid, nil
}

func toDocument(tr *domain.TranslationRecord) translationDocument {
	_, word, lang, words, translationLang := tr.Flat()
	return translationDocument{
		Word:            word,
		Lang:            lang.String(),
		Translations:    words,
		TranslationLang: translationLang.String(),
	}
}

func toRecord(doc translationDocument) (*domain.TranslationRecord, error) {
	lang, err := domain.ParseLang(doc.Lang)
	if err != nil {
		return nil, fmt.Errorf("stored translation %s: %w", doc.ID.Hex(), err)
	}
	translationLang, err := domain.ParseLang(doc.TranslationLang)
	if err != nil {
		return nil, fmt.Errorf("stored translation %s: %w", doc.ID.Hex(), err)
	}

	tr, err := domain.NewTranslationRecord(doc.ID.Hex(), doc.Word, lang, doc.Translations, translationLang)
	if err != nil {
		return nil, fmt.Errorf("stored translation %s: %w", doc.ID.Hex(), err)
	}
	return tr, nil
}
