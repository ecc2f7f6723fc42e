package models

import (
	"time"
)

// Firestore documents persisted by the reference backend. Money is stored as
// int64 cents; the wire layer converts to decimals.

type UserDoc struct {
	UID       string    `firestore:"uid" json:"uid"`
	FullName  string    `firestore:"fullName" json:"fullName"`
	Phone     string    `firestore:"phone" json:"phone"`
	Email     string    `firestore:"email" json:"email"`
	Role      string    `firestore:"role" json:"role"` // parent | child | admin
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

type ChildDoc struct {
	ID          string    `firestore:"id" json:"id"`
	ParentID    string    `firestore:"parentId" json:"parentId"`
	Name        string    `firestore:"name" json:"name"`
	DateOfBirth string    `firestore:"dateOfBirth" json:"dateOfBirth"`
	PhotoURL    string    `firestore:"photoUrl" json:"photoUrl"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

// GoalDoc is keyed by child id; a child has at most one goal.
type GoalDoc struct {
	ChildID      string    `firestore:"childId" json:"childId"`
	OwnerID      string    `firestore:"ownerId" json:"ownerId"`
	GoalType     string    `firestore:"goalType" json:"goalType"`
	TargetCents  int64     `firestore:"targetCents" json:"targetCents"`
	TargetDate   string    `firestore:"targetDate" json:"targetDate"`
	MonthlyCents int64     `firestore:"monthlyCents" json:"monthlyCents"`
	Paused       bool      `firestore:"paused" json:"paused"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// GoalOwnerDoc links a user to a child whose goal they
// may view. Child-role accounts resolve "my goal" through it.
type GoalOwnerDoc struct {
	OwnerID   string    `firestore:"ownerId" json:"ownerId"`
	ChildID   string    `firestore:"childId" json:"childId"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

type TransactionType string

const (
	TransactionManual TransactionType = "MANUAL"
	TransactionAuto   TransactionType = "AUTO"
)

type TransactionDoc struct {
	ID          string          `firestore:"id" json:"id"`
	ChildID     string          `firestore:"childId" json:"childId"`
	AmountCents int64           `firestore:"amountCents" json:"amountCents"`
	Type        TransactionType `firestore:"type" json:"type"`
	Date        time.Time       `firestore:"date" json:"date"`
}

// PortfolioDoc is keyed by child id.
type PortfolioDoc struct {
	ChildID              string    `firestore:"childId" json:"childId"`
	PortfolioType        string    `firestore:"portfolioType" json:"portfolioType"`
	AllocationPercentage int       `firestore:"allocationPercentage" json:"allocationPercentage"`
	ValueCents           int64     `firestore:"valueCents" json:"valueCents"`
	LastUpdated          time.Time `firestore:"lastUpdated" json:"lastUpdated"`
}

// DirectiveDoc is keyed by child id. GuardianContact holds KMS ciphertext
// when encryption is configured.
type DirectiveDoc struct {
	ChildID         string    `firestore:"childId" json:"childId"`
	GuardianName    string    `firestore:"guardianName" json:"guardianName"`
	GuardianContact string    `firestore:"guardianContact" json:"guardianContact"`
	Instructions    string    `firestore:"instructions" json:"instructions"`
	LastUpdated     time.Time `firestore:"lastUpdated" json:"lastUpdated"`
}
