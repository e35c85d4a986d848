package domain

import "time"

// FuelType enumerates supported fuel configurations.
type FuelType string

const (
	FuelPetrol    FuelType = "Petrol"
	FuelDiesel    FuelType = "Diesel"
	FuelCNG       FuelType = "CNG"
	FuelElectric  FuelType = "Electric"
	FuelHybrid    FuelType = "Hybrid"
	FuelPetrolCNG FuelType = "Petrol + CNG"
)

// Transmission enumerates gearbox types.
type Transmission string

const (
	TransmissionManual    Transmission = "Manual"
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionAMT       Transmission = "AMT"
	TransmissionCVT       Transmission = "CVT"
	TransmissionDCT       Transmission = "DCT"
)

// ConditionGrade rates the state of a car's exterior or interior.
type ConditionGrade string

const (
	ConditionExcellent ConditionGrade = "Excellent"
	ConditionGood      ConditionGrade = "Good"
	ConditionFair      ConditionGrade = "Fair"
	ConditionNeedsWork ConditionGrade = "Needs Work"
)

// CarFeatures lists equipment flags for a listing. Stored as JSONB.
type CarFeatures struct {
	PowerSteering    bool `json:"powerSteering"`
	PowerWindows     bool `json:"powerWindows"`
	AirConditioner   bool `json:"airConditioner"`
	DriverAirbag     bool `json:"driverAirbag"`
	PassengerAirbag  bool `json:"passengerAirbag"`
	AlloyWheels      bool `json:"alloyWheels"`
	MultimediaSystem bool `json:"multimediaSystem"`
	CentralLocking   bool `json:"centralLocking"`
	ABS              bool `json:"abs"`
	ParkingSensors   bool `json:"parkingSensors"`
}

// CarCondition grades exterior and interior state. Stored as JSONB.
type CarCondition struct {
	Exterior ConditionGrade `json:"exterior"`
	Interior ConditionGrade `json:"interior"`
}

// CarLocation records where the car is registered for sale. Stored as JSONB.
type CarLocation struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Car is the aggregate for marketplace listings.
type Car struct {
	ID                 string
	UserID             string
	Make               string
	Model              string
	Variant            string
	YearOfManufacture  int
	RegistrationYear   int
	RegistrationNumber string
	Color              string
	FuelType           FuelType
	Transmission       Transmission
	EngineDisplacement int
	Kilometers         int
	VIN                string
	Ownership          int
	InsuranceValid     *time.Time
	RTOLocation        string
	Features           CarFeatures
	Price              float64
	Available          bool
	Condition          CarCondition
	Description        string
	Location           CarLocation
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
