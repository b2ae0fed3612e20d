package mongodb

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ---------- DTO layer ------------------
type bookingDTO struct {
	ID         string               `bson:"_id"`
	PackageID  string               `bson:"package_id"`
	UserID     string               `bson:"user_id"`
	GuideID    *string              `bson:"guide_id,omitempty"`
	StartDate  time.Time            `bson:"start_date"`
	EndDate    time.Time            `bson:"end_date"`
	TotalPrice primitive.Decimal128 `bson:"total_price"`
	Status     string               `bson:"status"`
	CreatedAt  time.Time            `bson:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at"`
}

type packageSummaryDTO struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Price       primitive.Decimal128 `bson:"price"`
	Duration    int                  `bson:"duration"`
	ImageBase64 string               `bson:"image_base64"`
}

type partyDTO struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

type bookingDetailDTO struct {
	bookingDTO `bson:",inline"`
	Package    *packageSummaryDTO `bson:"package,omitempty"`
	User       *partyDTO          `bson:"user,omitempty"`
	Guide      *partyDTO          `bson:"guide,omitempty"`
}

func (b *bookingDTO) ToEntity() (*entity.Booking, error) {
	total, err := fromDecimal128(b.TotalPrice)
	if err != nil {
		return nil, err
	}
	return &entity.Booking{
		ID:         b.ID,
		PackageID:  b.PackageID,
		UserID:     b.UserID,
		GuideID:    b.GuideID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: total,
		Status:     entity.BookingStatus(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}, nil
}

func FromBookingEntityToDTO(b *entity.Booking) (*bookingDTO, error) {
	total, err := toDecimal128(b.TotalPrice)
	if err != nil {
		return nil, err
	}
	return &bookingDTO{
		ID:         b.ID,
		PackageID:  b.PackageID,
		UserID:     b.UserID,
		GuideID:    b.GuideID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: total,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}, nil
}

func (d *bookingDetailDTO) ToEntity() (*entity.BookingDetail, error) {
	booking, err := d.bookingDTO.ToEntity()
	if err != nil {
		return nil, err
	}
	detail := &entity.BookingDetail{Booking: *booking}
	if d.Package != nil {
		price, err := fromDecimal128(d.Package.Price)
		if err != nil {
			return nil, err
		}
		detail.Package = &entity.PackageSummary{
			ID:          d.Package.ID,
			Name:        d.Package.Name,
			Price:       price,
			Duration:    d.Package.Duration,
			ImageBase64: d.Package.ImageBase64,
		}
	}
	if d.User != nil {
		detail.User = &entity.PartySummary{ID: d.User.ID, Name: d.User.Name, Email: d.User.Email}
	}
	if d.Guide != nil {
		detail.Guide = &entity.PartySummary{ID: d.Guide.ID, Name: d.Guide.Name, Email: d.Guide.Email}
	}
	return detail, nil
}

// ---------------------------------------

type BookingRepository struct {
	collection         *mongo.Collection
	packagesCollection string
	usersCollection    string
}

var _ contract.IBookingRepository = (*BookingRepository)(nil)

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{
		collection:         db.Collection("bookings"),
		packagesCollection: "packages",
		usersCollection:    "users",
	}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	dto, err := FromBookingEntityToDTO(booking)
	if err != nil {
		return err
	}
	_, err = r.collection.InsertOne(ctx, dto)
	return translate(err, "booking")
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id string) (*entity.Booking, error) {
	var dto bookingDTO
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dto); err != nil {
		return nil, translate(err, "booking")
	}
	return dto.ToEntity()
}

// bookingFilter builds the match stage of a listing.
func bookingFilter(q contract.BookingQuery) bson.M {
	filter := bson.M{}
	if q.UserID != "" {
		filter["user_id"] = q.UserID
	}
	if q.GuideID != "" {
		filter["guide_id"] = q.GuideID
	}
	return filter
}

// lookupStages expands package, traveler and guide of each booking.
func (r *BookingRepository) lookupStages() mongo.Pipeline {
	lookup := func(from, local, as string) bson.D {
		return bson.D{{Key: "$lookup", Value: bson.M{
			"from":         from,
			"localField":   local,
			"foreignField": "_id",
			"as":           as,
		}}}
	}
	unwind := func(path string) bson.D {
		return bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       path,
			"preserveNullAndEmptyArrays": true,
		}}}
	}
	return mongo.Pipeline{
		lookup(r.packagesCollection, "package_id", "package"),
		unwind("$package"),
		lookup(r.usersCollection, "user_id", "user"),
		unwind("$user"),
		lookup(r.usersCollection, "guide_id", "guide"),
		unwind("$guide"),
		bson.D{{Key: "$project", Value: bson.M{
			"package.description": 0,
			"package.includes":    0,
			"user.password_hash":  0,
			"guide.password_hash": 0,
		}}},
	}
}

// listPipeline sorts newest first and pages before expanding references.
func (r *BookingRepository) listPipeline(q contract.BookingQuery) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bookingFilter(q)}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if q.PageSize > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: int64((page - 1) * q.PageSize)}},
			bson.D{{Key: "$limit", Value: int64(q.PageSize)}},
		)
	}
	return append(pipeline, r.lookupStages()...)
}

func (r *BookingRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*entity.BookingDetail, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "booking")
	}
	defer cursor.Close(ctx)

	var dtos []bookingDetailDTO
	if err := cursor.All(ctx, &dtos); err != nil {
		return nil, translate(err, "booking")
	}
	details := make([]*entity.BookingDetail, 0, len(dtos))
	for i := range dtos {
		d, err := dtos[i].ToEntity()
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *BookingRepository) GetBookingDetail(ctx context.Context, id string) (*entity.BookingDetail, error) {
	pipeline := append(mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{"_id": id}}}}, r.lookupStages()...)
	details, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, translate(mongo.ErrNoDocuments, "booking")
	}
	return details[0], nil
}

func (r *BookingRepository) ListBookings(ctx context.Context, q contract.BookingQuery) ([]*entity.BookingDetail, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bookingFilter(q))
	if err != nil {
		return nil, 0, translate(err, "booking")
	}
	details, err := r.aggregate(ctx, r.listPipeline(q))
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error {
	return r.set(ctx, id, bson.M{"status": string(status)})
}

// AssignGuide sets the guide and confirms the booking in one document update.
func (r *BookingRepository) AssignGuide(ctx context.Context, id, guideID string) error {
	return r.set(ctx, id, bson.M{"guide_id": guideID, "status": string(entity.BookingStatusConfirmed)})
}

func (r *BookingRepository) set(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return translate(err, "booking")
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "booking")
	}
	return nil
}

// completeElapsedFilter selects confirmed bookings whose end date is before now.
func completeElapsedFilter(now time.Time) bson.M {
	return bson.M{
		"status":   string(entity.BookingStatusConfirmed),
		"end_date": bson.M{"$lt": now},
	}
}

func (r *BookingRepository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	update := bson.M{"$set": bson.M{
		"status":     string(entity.BookingStatusCompleted),
		"updated_at": now,
	}}
	result, err := r.collection.UpdateMany(ctx, completeElapsedFilter(now), update)
	if err != nil {
		return 0, translate(err, "booking")
	}
	return result.ModifiedCount, nil
}
