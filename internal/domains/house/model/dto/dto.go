package dto

import (
	"math"
	"mime/multipart"
	"slices"
	"time"

	bookingModel "ihome/internal/domains/booking/model"
	"ihome/internal/domains/house/model"
	userModel "ihome/internal/domains/user/model"
	"ihome/shared"
	"ihome/shared/constant"
	"ihome/shared/failure"
	gModel "ihome/shared/model"
	"ihome/shared/timezone"

	"github.com/google/uuid"
)

// SearchRequest carries the raw search query. Empty strings mean the filter is absent.
type SearchRequest struct {
	AreaID    string `json:"aid"`
	StartDate string `json:"sd"`
	EndDate   string `json:"ed"`
	SortKey   string `json:"sk"`
	Page      int    `json:"p"`
}

// Area returns the area filter, or nil when none was requested.
func (s *SearchRequest) Area() (*int, error) {
	if s.AreaID == constant.Empty {
		return nil, nil
	}

	id, err := shared.ConvertStringToInt(s.AreaID)
	if err != nil {
		return nil, failure.BadRequestFromString("aid must be an integer") //nolint:wrapcheck
	}

	return &id, nil
}

// Bounds parses the optional date range. Either side may be missing. When both are present
// the range must not be empty.
func (s *SearchRequest) Bounds() (begin, end *time.Time, err error) {
	if s.StartDate != constant.Empty {
		date, err := timezone.ParseDate(s.StartDate)
		if err != nil {
			return nil, nil, failure.BadRequest(err) //nolint:wrapcheck
		}

		begin = &date
	}

	if s.EndDate != constant.Empty {
		date, err := timezone.ParseDate(s.EndDate)
		if err != nil {
			return nil, nil, failure.BadRequest(err) //nolint:wrapcheck
		}

		end = &date
	}

	if begin != nil && end != nil && !begin.Before(*end) {
		return nil, nil, model.ErrInvalidRange
	}

	return begin, end, nil
}

func (s *SearchRequest) Normalize() {
	s.SortKey = model.NormalizeSortKey(s.SortKey)

	if s.Page <= 0 {
		s.Page = constant.DefaultValuePage
	}
}

type CreateHouseRequest struct {
	Title      string  `json:"title"      validate:"required,max=64"`
	Price      float64 `json:"price"      validate:"gte=0,lte=1000000"`
	AreaID     int     `json:"area_id"    validate:"required,gt=0"`
	Address    string  `json:"address"    validate:"required,max=512"`
	RoomCount  int     `json:"room_count" validate:"required,gt=0"`
	Acreage    int     `json:"acreage"    validate:"required,gt=0"`
	Unit       string  `json:"unit"       validate:"required,max=32"`
	Capacity   int     `json:"capacity"   validate:"required,gt=0"`
	Beds       string  `json:"beds"       validate:"required,max=64"`
	Deposit    float64 `json:"deposit"    validate:"gte=0,lte=1000000"`
	MinDays    int     `json:"min_days"   validate:"gte=0"`
	MaxDays    int     `json:"max_days"   validate:"gte=0"`
	Facilities []int   `json:"facility"   validate:"omitempty,dive,gt=0"`
}

// FacilityIDs returns the requested facilities without duplicates.
func (c *CreateHouseRequest) FacilityIDs() []int {
	ids := slices.Clone(c.Facilities)
	slices.Sort(ids)

	return slices.Compact(ids)
}

// ToModel converts yuan amounts to cents.
func (c *CreateHouseRequest) ToModel(actor string, now time.Time) model.House {
	return model.House{
		ID:        uuid.NewString(),
		UserID:    actor,
		AreaID:    c.AreaID,
		Title:     c.Title,
		Price:     toCents(c.Price),
		Address:   c.Address,
		RoomCount: c.RoomCount,
		Acreage:   c.Acreage,
		Unit:      c.Unit,
		Capacity:  c.Capacity,
		Beds:      c.Beds,
		Deposit:   toCents(c.Deposit),
		MinDays:   c.MinDays,
		MaxDays:   c.MaxDays,
		Metadata:  gModel.NewMetadata(now, actor),
	}
}

func toCents(amount float64) int {
	return int(math.Round(amount * constant.CentsPerUnit))
}

type CreateHouseResponse struct {
	ID string `json:"house_id"`
}

type UploadImageRequest struct {
	Image     multipart.FileHeader `validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	ImageFile multipart.File       `validate:"-"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

// HouseResponse is the card shown in lists.
type HouseResponse struct {
	ID         string `json:"house_id"`
	Title      string `json:"title"`
	Price      int    `json:"price"`
	AreaName   string `json:"area_name"`
	ImageURL   string `json:"img_url"`
	RoomCount  int    `json:"room_count"`
	OrderCount int    `json:"order_count"`
	Address    string `json:"address"`
	UserAvatar string `json:"user_avatar"`
	CreatedAt  string `json:"ctime"`
}

func (r *HouseResponse) FromModel(house model.House) {
	r.ID = house.ID
	r.Title = house.Title
	r.Price = house.Price
	r.AreaName = house.AreaName
	r.ImageURL = house.IndexImageURL
	r.RoomCount = house.RoomCount
	r.OrderCount = house.OrderCount
	r.Address = house.Address
	r.UserAvatar = house.OwnerAvatar
	r.CreatedAt = timezone.Format(house.CreatedAt, constant.DateOnlyFormat)
}

type SearchResponse struct {
	TotalPage int             `json:"total_page"`
	Houses    []HouseResponse `json:"houses"`
}

func (r *SearchResponse) FromModels(houses []model.House, total, pageSize int) {
	r.TotalPage = shared.CalculateTotalPage(total, pageSize)
	r.Houses = fromModels(houses)
}

type HousesResponse struct {
	Houses []HouseResponse `json:"houses"`
}

func (r *HousesResponse) FromModels(houses []model.House) {
	r.Houses = fromModels(houses)
}

func fromModels(houses []model.House) []HouseResponse {
	res := make([]HouseResponse, len(houses))
	for i, house := range houses {
		res[i].FromModel(house)
	}

	return res
}

type CommentResponse struct {
	UserName  string `json:"user_name"`
	Content   string `json:"content"`
	CreatedAt string `json:"ctime"`
}

type FacilityResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type HouseDetail struct {
	ID          string             `json:"hid"`
	UserID      string             `json:"user_id"`
	UserName    string             `json:"user_name"`
	UserAvatar  string             `json:"user_avatar"`
	Title       string             `json:"title"`
	Price       int                `json:"price"`
	Address     string             `json:"address"`
	RoomCount   int                `json:"room_count"`
	Acreage     int                `json:"acreage"`
	Unit        string             `json:"unit"`
	Capacity    int                `json:"capacity"`
	Beds        string             `json:"beds"`
	Deposit     int                `json:"deposit"`
	MinDays     int                `json:"min_days"`
	MaxDays     int                `json:"max_days"`
	ImageURLs   []string           `json:"img_urls"`
	Facilities  []FacilityResponse `json:"facilities"`
	Comments    []CommentResponse  `json:"comments"`
	AreaName    string             `json:"area_name"`
	OrderCount  int                `json:"order_count"`
	IndexImage  string             `json:"index_image_url"`
	PublishedAt string             `json:"ctime"`
}

func (d *HouseDetail) FromModel(house model.House, images []model.HouseImage, facilities []model.Facility, comments []bookingModel.Booking) {
	d.ID = house.ID
	d.UserID = house.UserID
	d.UserName = house.OwnerName
	d.UserAvatar = house.OwnerAvatar
	d.Title = house.Title
	d.Price = house.Price
	d.Address = house.Address
	d.RoomCount = house.RoomCount
	d.Acreage = house.Acreage
	d.Unit = house.Unit
	d.Capacity = house.Capacity
	d.Beds = house.Beds
	d.Deposit = house.Deposit
	d.MinDays = house.MinDays
	d.MaxDays = house.MaxDays
	d.AreaName = house.AreaName
	d.OrderCount = house.OrderCount
	d.IndexImage = house.IndexImageURL
	d.PublishedAt = timezone.Format(house.CreatedAt, constant.DateOnlyFormat)

	d.ImageURLs = make([]string, len(images))
	for i, image := range images {
		d.ImageURLs[i] = image.URL
	}

	d.Facilities = make([]FacilityResponse, len(facilities))
	for i, facility := range facilities {
		d.Facilities[i] = FacilityResponse{ID: facility.ID, Name: facility.Name}
	}

	d.Comments = make([]CommentResponse, len(comments))
	for i, booking := range comments {
		renter := userModel.User{Username: booking.RenterName, Mobile: booking.RenterMobile}

		d.Comments[i] = CommentResponse{
			UserName:  renter.DisplayName(),
			Content:   booking.Comment,
			CreatedAt: timezone.Format(booking.ModifiedAt, constant.DateFormat),
		}
	}
}

// DetailResponse pairs the cached house detail with the viewer, which is never cached.
type DetailResponse struct {
	ViewerID string      `json:"user_id"`
	House    HouseDetail `json:"house"`
}
