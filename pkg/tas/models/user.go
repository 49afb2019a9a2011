package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// User is a TAS account.
type User struct {
	ID            Field[int64]
	Username      Field[string]
	Email         Field[string]
	FirstName     Field[string]
	LastName      Field[string]
	Institution   Field[string]
	InstitutionID Field[int64]
	Department    Field[string]
	DepartmentID  Field[int64]
	Country       Field[string]
	CountryID     Field[int64]
	Citizenship   Field[string]
	CitizenshipID Field[int64]
	Phone         Field[string]
	Title         Field[string]
	PIEligibility Field[string]
	Source        Field[string]
}

func hydrateUser(rec tas.Record) (*User, error) {
	h := newHydrator("user", rec)
	u := &User{
		ID:            h.intField("id"),
		Username:      h.stringField("username"),
		Email:         h.stringField("email"),
		FirstName:     h.stringField("firstName"),
		LastName:      h.stringField("lastName"),
		Institution:   h.stringField("institution"),
		InstitutionID: h.intField("institutionId"),
		Department:    h.stringField("department"),
		DepartmentID:  h.intField("departmentId"),
		Country:       h.stringField("country"),
		CountryID:     h.intField("countryId"),
		Citizenship:   h.stringField("citizenship"),
		CitizenshipID: h.intField("citizenshipId"),
		Phone:         h.stringField("phone"),
		Title:         h.stringField("title"),
		PIEligibility: h.stringField("piEligibility"),
		Source:        h.stringField("source"),
	}
	if h.err != nil {
		return nil, h.err
	}
	return u, nil
}

// NewUser builds a User from a caller-supplied record.
func NewUser(rec tas.Record) (*User, error) {
	if rec == nil {
		return nil, localError("new user", errors.New("record is nil"))
	}
	u, err := hydrateUser(rec)
	if err != nil {
		return nil, localError("new user", err)
	}
	return u, nil
}

// GetUser fetches and hydrates one user.
func GetUser(ctx context.Context, api API, sel tas.UserSelector) (*User, error) {
	rec, err := api.GetUser(ctx, sel)
	if err != nil {
		return nil, err
	}
	return userFromRemote("get user", rec)
}

func userFromRemote(op string, rec tas.Record) (*User, error) {
	if rec == nil {
		return nil, remoteError(op, errors.New("user record is null"))
	}
	u, err := hydrateUser(rec)
	if err != nil {
		return nil, remoteError(op, err)
	}
	return u, nil
}

// AsDict returns the user as a record, leaving out absent attributes.
func (u *User) AsDict() tas.Record {
	rec := make(tas.Record)
	put(rec, "id", u.ID)
	put(rec, "username", u.Username)
	put(rec, "email", u.Email)
	put(rec, "firstName", u.FirstName)
	put(rec, "lastName", u.LastName)
	put(rec, "institution", u.Institution)
	put(rec, "institutionId", u.InstitutionID)
	put(rec, "department", u.Department)
	put(rec, "departmentId", u.DepartmentID)
	put(rec, "country", u.Country)
	put(rec, "countryId", u.CountryID)
	put(rec, "citizenship", u.Citizenship)
	put(rec, "citizenshipId", u.CitizenshipID)
	put(rec, "phone", u.Phone)
	put(rec, "title", u.Title)
	put(rec, "piEligibility", u.PIEligibility)
	put(rec, "source", u.Source)
	return rec
}

func (u *User) String() string {
	if name, ok := u.Username.Get(); ok {
		return name
	}
	return "<new user>"
}

func (u *User) identified() (int64, bool) {
	id, ok := u.ID.Get()
	return id, ok && id != 0
}

// Save creates the user and replaces u with what the service stored. A user
// that already has an id is rejected; use Edit.
func (u *User) Save(ctx context.Context, api API) error {
	const op = "save user"
	if _, ok := u.identified(); ok {
		return fmt.Errorf("%s: %w: user already exists, use Edit", op, tas.ErrInvalidArgument)
	}
	rec, err := api.SaveUser(ctx, 0, u.AsDict())
	if err != nil {
		return err
	}
	saved, err := userFromRemote(op, rec)
	if err != nil {
		return err
	}
	*u = *saved
	return nil
}

// Edit sends the user's current attributes as an update. When the service
// echoes the stored record, u is refreshed from it.
func (u *User) Edit(ctx context.Context, api API) error {
	const op = "edit user"
	id, ok := u.identified()
	if !ok {
		return fmt.Errorf("%s: %w: user has no id, use Save", op, tas.ErrInvalidArgument)
	}
	rec, err := api.SaveUser(ctx, id, u.AsDict())
	if err != nil || rec == nil {
		return err
	}
	saved, err := userFromRemote(op, rec)
	if err != nil {
		return err
	}
	*u = *saved
	return nil
}

// Verify confirms the account with the emailed code, optionally setting the
// password at the same time.
func (u *User) Verify(ctx context.Context, api API, code, password string) (bool, error) {
	id, ok := u.identified()
	if !ok {
		return false, fmt.Errorf("verify user: %w: user has no id", tas.ErrInvalidArgument)
	}
	return api.VerifyUser(ctx, id, code, password)
}

func (u *User) RequestPasswordReset(ctx context.Context, api API, source string) (any, error) {
	name, ok := u.Username.Get()
	if !ok || name == "" {
		return nil, fmt.Errorf("request password reset: %w: user has no username", tas.ErrInvalidArgument)
	}
	return api.RequestPasswordReset(ctx, name, source)
}

func (u *User) ConfirmPasswordReset(ctx context.Context, api API, code, newPassword, source string) (bool, error) {
	name, ok := u.Username.Get()
	if !ok || name == "" {
		return false, fmt.Errorf("confirm password reset: %w: user has no username", tas.ErrInvalidArgument)
	}
	return api.ConfirmPasswordReset(ctx, name, code, newPassword, source)
}
