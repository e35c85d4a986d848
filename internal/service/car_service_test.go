package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/carmarket-service/internal/domain"
	"github.com/spec-kit/carmarket-service/internal/repository"
	apperrors "github.com/spec-kit/carmarket-service/pkg/util"
)

func validCarInput(userID string) CarCreateInput {
	insurance := time.Now().AddDate(1, 0, 0)
	return CarCreateInput{
		UserID:             userID,
		Make:               "Maruti",
		Model:              "Swift",
		Variant:            "ZXi",
		YearOfManufacture:  2019,
		RegistrationYear:   2019,
		RegistrationNumber: "KA01CD5678",
		Color:              "Red",
		FuelType:           domain.FuelPetrol,
		Transmission:       domain.TransmissionManual,
		EngineDisplacement: 1197,
		Kilometers:         42000,
		VIN:                "VINSWIFT1",
		Ownership:          1,
		InsuranceValid:     &insurance,
		RTOLocation:        "Bengaluru",
		Price:              550000,
		Description:        "Single owner, full service history",
	}
}

func TestAddCarAppliesDefaults(t *testing.T) {
	users := newStubUserRepo()
	cars := newStubCarRepo()
	svc := NewCarService(cars, users)
	owner := users.add(domain.User{Name: "Asha", Email: "asha@example.com", UserType: domain.UserTypeCustomer})

	car, err := svc.AddCar(context.Background(), validCarInput(owner.ID))
	if err != nil {
		t.Fatalf("AddCar: %v", err)
	}
	if !car.Available {
		t.Fatal("expected new listing to be available")
	}
	if !car.Features.PowerSteering {
		t.Fatal("expected default power steering feature")
	}
	if car.Condition.Exterior != domain.ConditionGood || car.Condition.Interior != domain.ConditionGood {
		t.Fatalf("expected default good condition, got %+v", car.Condition)
	}
}

func TestAddCarRejectsAdmins(t *testing.T) {
	users := newStubUserRepo()
	cars := newStubCarRepo()
	svc := NewCarService(cars, users)
	admin := users.add(domain.User{Name: "Ops", Email: "ops@example.com", UserType: domain.UserTypeAdmin})

	_, err := svc.AddCar(context.Background(), validCarInput(admin.ID))
	expectStatusCode(t, err, "FORBIDDEN")
}

func TestAddCarReportsMissingFields(t *testing.T) {
	users := newStubUserRepo()
	cars := newStubCarRepo()
	svc := NewCarService(cars, users)
	owner := users.add(domain.User{Name: "Asha", Email: "asha@example.com", UserType: domain.UserTypeCustomer})

	input := validCarInput(owner.ID)
	input.VIN = ""
	input.Price = 0

	_, err := svc.AddCar(context.Background(), input)
	expectStatusCode(t, err, "BAD_REQUEST")
	msg := apperrors.ToDomainError(err).Message
	if !strings.Contains(msg, "vin") || !strings.Contains(msg, "price") {
		t.Fatalf("expected missing fields named, got %q", msg)
	}
}

func TestAddCarRejectsDuplicateVIN(t *testing.T) {
	users := newStubUserRepo()
	cars := newStubCarRepo()
	svc := NewCarService(cars, users)
	owner := users.add(domain.User{Name: "Asha", Email: "asha@example.com", UserType: domain.UserTypeCustomer})

	if _, err := svc.AddCar(context.Background(), validCarInput(owner.ID)); err != nil {
		t.Fatalf("AddCar: %v", err)
	}
	input := validCarInput(owner.ID)
	input.RegistrationNumber = "KA02ZZ0001"

	_, err := svc.AddCar(context.Background(), input)
	expectStatusCode(t, err, "BAD_REQUEST")
}

func TestUpdateCarRequiresOwner(t *testing.T) {
	users := newStubUserRepo()
	cars := newStubCarRepo()
	svc := NewCarService(cars, users)
	owner := users.add(domain.User{Name: "Asha", Email: "asha@example.com", UserType: domain.UserTypeCustomer})
	stranger := users.add(domain.User{Name: "Ravi", Email: "ravi@example.com", UserType: domain.UserTypeCustomer})

	car, err := svc.AddCar(context.Background(), validCarInput(owner.ID))
	if err != nil {
		t.Fatalf("AddCar: %v", err)
	}

	price := 525000.0
	_, err = svc.UpdateCar(context.Background(), car.ID, stranger.ID, CarUpdateInput{Price: &price})
	expectStatusCode(t, err, "FORBIDDEN")

	updated, err := svc.UpdateCar(context.Background(), car.ID, owner.ID, CarUpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("UpdateCar: %v", err)
	}
	if updated.Price != 525000 {
		t.Fatalf("expected price 525000, got %v", updated.Price)
	}
	if updated.VIN != car.VIN || updated.RegistrationNumber != car.RegistrationNumber {
		t.Fatal("expected vin and registration number to stay unchanged")
	}
}

func TestDeleteCarRequiresOwner(t *testing.T) {
	users := newStubUserRepo()
	cars := newStubCarRepo()
	svc := NewCarService(cars, users)
	owner := users.add(domain.User{Name: "Asha", Email: "asha@example.com", UserType: domain.UserTypeCustomer})
	stranger := users.add(domain.User{Name: "Ravi", Email: "ravi@example.com", UserType: domain.UserTypeCustomer})

	car, err := svc.AddCar(context.Background(), validCarInput(owner.ID))
	if err != nil {
		t.Fatalf("AddCar: %v", err)
	}

	err = svc.DeleteCar(context.Background(), car.ID, stranger.ID)
	expectStatusCode(t, err, "FORBIDDEN")

	if err := svc.DeleteCar(context.Background(), car.ID, owner.ID); err != nil {
		t.Fatalf("DeleteCar: %v", err)
	}
	_, err = svc.GetCar(context.Background(), car.ID)
	expectStatusCode(t, err, "NOT_FOUND")
}

func TestListUserCarsResolvesOwner(t *testing.T) {
	users := newStubUserRepo()
	cars := newStubCarRepo()
	svc := NewCarService(cars, users)
	owner := users.add(domain.User{Name: "Asha", Email: "asha@example.com", UserType: domain.UserTypeCustomer})
	other := users.add(domain.User{Name: "Ravi", Email: "ravi@example.com", UserType: domain.UserTypeCustomer})

	if _, err := svc.AddCar(context.Background(), validCarInput(owner.ID)); err != nil {
		t.Fatalf("AddCar: %v", err)
	}
	second := validCarInput(other.ID)
	second.VIN = "VINSWIFT2"
	second.RegistrationNumber = "KA02ZZ0002"
	if _, err := svc.AddCar(context.Background(), second); err != nil {
		t.Fatalf("AddCar: %v", err)
	}

	views, err := svc.ListUserCars(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListUserCars: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 car, got %d", len(views))
	}
	if views[0].Owner == nil || views[0].Owner.Email != "asha@example.com" {
		t.Fatalf("expected resolved owner, got %+v", views[0].Owner)
	}

	all, err := svc.ListCars(context.Background(), repository.CarFilter{})
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 cars, got %d", len(all))
	}
}
