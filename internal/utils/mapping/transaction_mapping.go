package mapping

import (
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/SscSPs/loan_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		UserID:         d.UserID,
		ApplicationID:  d.ApplicationID,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		MonthlyPayment: d.MonthlyPayment,
		TotalAmount:    d.TotalAmount,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		UserID:         m.UserID,
		ApplicationID:  m.ApplicationID,
		StartDate:      calendarDate(m.StartDate),
		EndDate:        calendarDate(m.EndDate),
		MonthlyPayment: m.MonthlyPayment,
		TotalAmount:    m.TotalAmount,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		Kind:          string(d.Kind),
		Amount:        d.Amount,
		EntryDate:     d.EntryDate,
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		Kind:          domain.LedgerEntryKind(m.Kind),
		Amount:        m.Amount,
		EntryDate:     calendarDate(m.EntryDate),
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:     d.PaymentID,
		TransactionID: d.TransactionID,
		PaymentType:   string(d.PaymentType),
		Amount:        d.Amount,
		DueDate:       d.DueDate,
		Status:        string(d.Status),
		PaidDate:      d.PaidDate,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:     m.PaymentID,
		TransactionID: m.TransactionID,
		PaymentType:   domain.ApplicationType(m.PaymentType),
		Amount:        m.Amount,
		DueDate:       calendarDate(m.DueDate),
		Status:        domain.PaymentStatus(m.Status),
		PaidDate:      m.PaidDate,
		CreatedAt:     m.CreatedAt,
	}
}

// calendarDate keeps the calendar day a DATE column was read as, at midnight UTC.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
