package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bridal-studio-backend/models"
	"bridal-studio-backend/utils"
)

// SyncBridge performs the dual write behind every record mutation: the
// database is the source of truth and is always written first; the
// spreadsheet mirror is a best-effort projection written second, with no
// rollback and no retry. A failed mirror write surfaces as MirrorWriteError
// so callers can warn "saved but not logged to spreadsheet".
type SyncBridge struct {
	db           *gorm.DB
	mirror       Mirror
	bookingSheet string
}

func NewSyncBridge(db *gorm.DB, mirror Mirror) *SyncBridge {
	return &SyncBridge{db: db, mirror: mirror, bookingSheet: "Bookings"}
}

type CustomerInput struct {
	Name        string
	Phone       string
	Services    []string
	Amount      string
	PaymentMode string
	CreatedBy   string
}

type CustomerPatch struct {
	Name        *string
	Phone       *string
	Services    []string
	Amount      *string
	PaymentMode *string
	RowIndex    *int
	UpdatedBy   string
}

func validateCustomerInput(in CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(in.Services) == 0 {
		return &ValidationError{Field: "services", Reason: "must not be empty"}
	}
	if !utils.ValidAmount(in.Amount) {
		return &ValidationError{Field: "amount", Reason: "must be a non-negative number"}
	}
	if in.PaymentMode != "cash" && in.PaymentMode != "upi" {
		return &ValidationError{Field: "paymentMode", Reason: "must be cash or upi"}
	}
	return nil
}

// CreateCustomer writes the record to the database, then appends its row to
// the mirror and stores the assigned row index on the record. The database
// write is never rolled back when the mirror append fails.
func (b *SyncBridge) CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	if err := validateCustomerInput(in); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		Services:    models.StringList(in.Services),
		Amount:      strings.TrimSpace(in.Amount),
		PaymentMode: in.PaymentMode,
		CreatedBy:   in.CreatedBy,
		UpdatedBy:   in.CreatedBy,
	}
	if err := b.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, &PrimaryWriteError{Op: "create customer", Err: err}
	}

	rowIndex, err := b.mirror.AppendRow(ctx, "", customerRow(customer))
	if err != nil {
		return customer, &MirrorWriteError{Op: "append customer row", RecordID: customer.ID.String(), Err: err}
	}

	customer.SheetRowIndex = &rowIndex
	if err := b.db.WithContext(ctx).Model(customer).Update("sheet_row_index", rowIndex).Error; err != nil {
		// The record and its mirror row both exist; only the cached index is
		// lost, so later mirror updates for this record will be skipped.
		log.Printf("sync: failed to store row index %d for customer %s: %v", rowIndex, customer.ID, err)
	}
	return customer, nil
}

// UpdateCustomer updates the database unconditionally, then the mirror row at
// the record's last-known index. The index comes from the patch when present,
// otherwise from the stored record. A missing index skips the mirror write.
func (b *SyncBridge) UpdateCustomer(ctx context.Context, id string, patch CustomerPatch) (*models.Customer, error) {
	var customer models.Customer
	if err := b.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "customer", ID: id}
		}
		return nil, &PrimaryWriteError{Op: "load customer", Err: err}
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		customer.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		customer.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Services != nil {
		if len(patch.Services) == 0 {
			return nil, &ValidationError{Field: "services", Reason: "must not be empty"}
		}
		customer.Services = models.StringList(patch.Services)
	}
	if patch.Amount != nil {
		if !utils.ValidAmount(*patch.Amount) {
			return nil, &ValidationError{Field: "amount", Reason: "must be a non-negative number"}
		}
		customer.Amount = strings.TrimSpace(*patch.Amount)
	}
	if patch.PaymentMode != nil {
		if *patch.PaymentMode != "cash" && *patch.PaymentMode != "upi" {
			return nil, &ValidationError{Field: "paymentMode", Reason: "must be cash or upi"}
		}
		customer.PaymentMode = *patch.PaymentMode
	}
	if patch.RowIndex != nil {
		customer.SheetRowIndex = patch.RowIndex
	}
	customer.UpdatedBy = patch.UpdatedBy

	if err := b.db.WithContext(ctx).Save(&customer).Error; err != nil {
		return nil, &PrimaryWriteError{Op: "update customer", Err: err}
	}

	if customer.SheetRowIndex != nil {
		row := customerUpdateColumns(&customer)
		if err := b.mirror.UpdateRow(ctx, "", *customer.SheetRowIndex, row); err != nil {
			return &customer, &MirrorWriteError{Op: "update customer row", RecordID: customer.ID.String(), Err: err}
		}
	}
	return &customer, nil
}

// DeleteCustomer removes the record, then its mirror row. The mirror delete
// physically shifts later rows; other records' cached indices are not
// re-indexed.
func (b *SyncBridge) DeleteCustomer(ctx context.Context, id string) error {
	var customer models.Customer
	if err := b.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "customer", ID: id}
		}
		return &PrimaryWriteError{Op: "load customer", Err: err}
	}

	if err := b.db.WithContext(ctx).Delete(&customer).Error; err != nil {
		return &PrimaryWriteError{Op: "delete customer", Err: err}
	}

	if customer.SheetRowIndex != nil {
		if err := b.mirror.DeleteRow(ctx, "", *customer.SheetRowIndex); err != nil {
			return &MirrorWriteError{Op: "delete customer row", RecordID: id, Err: err}
		}
	}
	return nil
}

// ListCustomers returns all records in creation-descending order.
func (b *SyncBridge) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := b.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, &PrimaryWriteError{Op: "list customers", Err: err}
	}
	return customers, nil
}

type BookingInput struct {
	Name          string
	Phone         string
	Service       string
	Date          string
	Time          string
	Notes         string
	AdvancePaid   bool
	AdvanceAmount string
	CreatedBy     string
}

type BookingPatch struct {
	Name          *string
	Phone         *string
	Service       *string
	Date          *string
	Time          *string
	Notes         *string
	AdvancePaid   *bool
	AdvanceAmount *string
	RowIndex      *int
}

func validateBookingInput(in BookingInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Service) == "" {
		return &ValidationError{Field: "service", Reason: "must not be empty"}
	}
	if !utils.ValidDate(in.Date) {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if in.AdvancePaid && !utils.ValidAmount(in.AdvanceAmount) {
		return &ValidationError{Field: "advanceAmount", Reason: "must be a non-negative number"}
	}
	return nil
}

func (b *SyncBridge) CreateBooking(ctx context.Context, in BookingInput) (*models.Booking, error) {
	if err := validateBookingInput(in); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Service:       strings.TrimSpace(in.Service),
		Date:          in.Date,
		Time:          in.Time,
		Notes:         in.Notes,
		AdvancePaid:   in.AdvancePaid,
		AdvanceAmount: in.AdvanceAmount,
		CreatedBy:     in.CreatedBy,
	}
	if booking.CreatedBy == "" {
		booking.CreatedBy = "system"
	}
	if err := b.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, &PrimaryWriteError{Op: "create booking", Err: err}
	}

	rowIndex, err := b.mirror.AppendRow(ctx, b.bookingSheet, bookingRow(booking))
	if err != nil {
		return booking, &MirrorWriteError{Op: "append booking row", RecordID: booking.ID.String(), Err: err}
	}

	booking.SheetRowIndex = &rowIndex
	if err := b.db.WithContext(ctx).Model(booking).Update("sheet_row_index", rowIndex).Error; err != nil {
		log.Printf("sync: failed to store row index %d for booking %s: %v", rowIndex, booking.ID, err)
	}
	return booking, nil
}

// ListBookings returns all bookings in creation-descending order.
func (b *SyncBridge) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := b.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, &PrimaryWriteError{Op: "list bookings", Err: err}
	}
	return bookings, nil
}

func (b *SyncBridge) UpdateBooking(ctx context.Context, id string, patch BookingPatch) (*models.Booking, error) {
	var booking models.Booking
	if err := b.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "booking", ID: id}
		}
		return nil, &PrimaryWriteError{Op: "load booking", Err: err}
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		booking.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		booking.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Service != nil {
		booking.Service = strings.TrimSpace(*patch.Service)
	}
	if patch.Date != nil {
		if !utils.ValidDate(*patch.Date) {
			return nil, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
		booking.Date = *patch.Date
	}
	if patch.Time != nil {
		booking.Time = *patch.Time
	}
	if patch.Notes != nil {
		booking.Notes = *patch.Notes
	}
	if patch.AdvancePaid != nil {
		booking.AdvancePaid = *patch.AdvancePaid
	}
	if patch.AdvanceAmount != nil {
		booking.AdvanceAmount = *patch.AdvanceAmount
	}
	if patch.RowIndex != nil {
		booking.SheetRowIndex = patch.RowIndex
	}

	if err := b.db.WithContext(ctx).Save(&booking).Error; err != nil {
		return nil, &PrimaryWriteError{Op: "update booking", Err: err}
	}

	if booking.SheetRowIndex != nil {
		row := bookingUpdateColumns(&booking)
		if err := b.mirror.UpdateRow(ctx, b.bookingSheet, *booking.SheetRowIndex, row); err != nil {
			return &booking, &MirrorWriteError{Op: "update booking row", RecordID: booking.ID.String(), Err: err}
		}
	}
	return &booking, nil
}

func (b *SyncBridge) DeleteBooking(ctx context.Context, id string) error {
	var booking models.Booking
	if err := b.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "booking", ID: id}
		}
		return &PrimaryWriteError{Op: "load booking", Err: err}
	}

	if err := b.db.WithContext(ctx).Delete(&booking).Error; err != nil {
		return &PrimaryWriteError{Op: "delete booking", Err: err}
	}

	if booking.SheetRowIndex != nil {
		if err := b.mirror.DeleteRow(ctx, b.bookingSheet, *booking.SheetRowIndex); err != nil {
			return &MirrorWriteError{Op: "delete booking row", RecordID: id, Err: err}
		}
	}
	return nil
}

// customerRow builds the full appended row:
// [date, time, name, phone, services, amount, payment mode, ISO timestamp].
func customerRow(c *models.Customer) []interface{} {
	now := utils.NowIST()
	phone := c.Phone
	if phone == "" {
		phone = "N/A"
	}
	return []interface{}{
		utils.FormatISTDate(now),
		utils.FormatISTTime(now),
		c.Name,
		phone,
		strings.Join(c.Services, ", "),
		c.Amount,
		c.PaymentMode,
		now.Format(time.RFC3339),
	}
}

// customerUpdateColumns builds the mutable columns (C onward) for an update,
// leaving the entry date/time in place.
func customerUpdateColumns(c *models.Customer) []interface{} {
	phone := c.Phone
	if phone == "" {
		phone = "N/A"
	}
	return []interface{}{
		c.Name,
		phone,
		strings.Join(c.Services, ", "),
		c.Amount,
		c.PaymentMode,
		time.Now().UTC().Format(time.RFC3339),
	}
}

// bookingRow builds the appended booking row:
// [date, time, name, phone, service, notes, ISO timestamp].
func bookingRow(b *models.Booking) []interface{} {
	now := utils.NowIST()
	return []interface{}{
		utils.FormatISTDate(now),
		utils.FormatISTTime(now),
		b.Name,
		b.Phone,
		b.Service,
		b.Notes,
		now.Format(time.RFC3339),
	}
}

func bookingUpdateColumns(b *models.Booking) []interface{} {
	return []interface{}{
		b.Name,
		b.Phone,
		b.Service,
		b.Notes,
		time.Now().UTC().Format(time.RFC3339),
	}
}
