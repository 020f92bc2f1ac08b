package model

const (
	FacilityTableName  = "facilities"
	FacilityEntityName = "facility"

	FieldFacilityID = "id"

	HouseFacilityTableName  = "house_facilities"
	HouseFacilityEntityName = "house_facility"

	FieldHouseFacilityHouseID    = "house_id"
	FieldHouseFacilityFacilityID = "facility_id"
)

type Facility struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type HouseFacility struct {
	HouseID    string `db:"house_id"`
	FacilityID int    `db:"facility_id"`
}
