package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/technotes/technotes-api/internal/core/domain"
)

const (
	collectionNotes    = "notes"
	collectionCounters = "counters"
	ticketCounterID    = "ticketNums"
)

// NoteRepository implements ports.NoteRepository. Ticket numbers come from
// a single counter document incremented atomically on every insert.
type NoteRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{
		col:      db.Collection(collectionNotes),
		counters: db.Collection(collectionCounters),
	}
}

type mongoNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Title     string             `bson:"title"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	Ticket    int64              `bson:"ticket"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (mn *mongoNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:        mn.ID.Hex(),
		UserID:    mn.User.Hex(),
		Title:     mn.Title,
		Text:      mn.Text,
		Completed: mn.Completed,
		Ticket:    mn.Ticket,
		CreatedAt: mn.CreatedAt,
		UpdatedAt: mn.UpdatedAt,
	}
}

func (r *NoteRepository) FindAll(ctx context.Context) ([]*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "ticket", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}

	var docs []mongoNote
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]*domain.Note, len(docs))
	for i := range docs {
		notes[i] = docs[i].toDomain()
	}
	return notes, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *NoteRepository) FindByTitle(ctx context.Context, title string) (*domain.Note, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *NoteRepository) findOne(ctx context.Context, filter bson.M) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mn mongoNote
	if err := r.col.FindOne(ctx, filter).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return mn.toDomain(), nil
}

// CountByUser counts notes owned by userID. A malformed id owns nothing.
func (r *NoteRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user": oid}, options.Count().SetLimit(1))
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	owner, err := primitive.ObjectIDFromHex(note.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ticket, err := r.nextTicket(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoNote{
		User:      owner,
		Title:     note.Title,
		Text:      note.Text,
		Completed: note.Completed,
		Ticket:    ticket,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateNote
		}
		return nil, fmt.Errorf("insert note: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		// No usable id came back; the service reports this as invalid data.
		return nil, nil
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

// nextTicket atomically increments the ticket counter, creating it on first
// use so that the first note receives domain.FirstTicket.
func (r *NoteRepository) nextTicket(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	update := bson.M{"$inc": bson.M{"seq": 1}}
	err := r.counters.FindOneAndUpdate(ctx, bson.M{"_id": ticketCounterID}, update, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next ticket: %w", err)
	}
	return domain.FirstTicket - 1 + counter.Seq, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(note.ID)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	owner, err := primitive.ObjectIDFromHex(note.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"user":      owner,
		"title":     note.Title,
		"text":      note.Text,
		"completed": note.Completed,
		"updatedAt": note.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateNote
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNoteNotFound
	}

	out := *note
	return &out, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index and the unique title and
// ticket indexes.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ticket", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
