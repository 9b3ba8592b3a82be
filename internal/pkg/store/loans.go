package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/db"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoanRepository struct {
	repo *MongoRepository[models.Loan]
}

func NewLoanRepository() *LoanRepository {
	collection := db.MDB.Database.Collection(consts.LoansCollection)
	mrepo := NewMongoRepository[models.Loan](collection)
	return &LoanRepository{repo: mrepo}
}

func (r *LoanRepository) CreateLoan(ctx context.Context, loan models.Loan) error {
	_, err := r.repo.Create(loan)
	if err != nil {
		logger.Error(ctx, "Loans : Error while inserting %v", err.Error())
		return fmt.Errorf("Loans : error while inserting %v", err.Error())
	}
	return nil
}

// ActiveLoanById resolves a loan that has not been soft deleted.
func (r *LoanRepository) ActiveLoanById(loanId primitive.ObjectID) (*models.Loan, error) {
	loan, err := r.repo.Read(bson.M{"_id": loanId, "isActive": true})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) LoanByFilter(filter interface{}) (*models.Loan, error) {
	loan, err := r.repo.Read(filter)
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindLoans lists loans matching the query and returns the unpaged total.
func (r *LoanRepository) FindLoans(ctx context.Context, query models.ListLoansQuery) ([]models.Loan, int64, error) {
	filter := buildLoanListFilter(query)

	total, err := r.repo.CountDocuments(filter)
	if err != nil {
		logger.Error(ctx, "Loans : Error while counting %v", err.Error())
		return nil, 0, err
	}

	sortField := query.SortBy
	if sortField == "" {
		sortField = "createdAt"
	}
	sortDir := -1
	if strings.EqualFold(query.SortOrder, "asc") {
		sortDir = 1
	}

	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: sortDir}})
	if query.Limit > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip((page - 1) * query.Limit).SetLimit(query.Limit)
	}

	loans, err := r.repo.FindAllWithOptions(filter, opts)
	if err != nil {
		logger.Error(ctx, "Loans : Error while listing %v", err.Error())
		return nil, 0, err
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	return loans, total, nil
}

func buildLoanListFilter(query models.ListLoansQuery) bson.M {
	filter := bson.M{}
	if !query.IncludeInactive {
		filter["isActive"] = true
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}
	if query.Account != "" {
		filter["account"] = query.Account
	}
	if query.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"loanNumber": pattern},
			{"customerName": pattern},
			{"phone": pattern},
		}
	}
	return filter
}

// ApprovedActiveLoans returns the loans the payment reminder sweep walks.
func (r *LoanRepository) ApprovedActiveLoans(ctx context.Context) ([]models.Loan, error) {
	loans, err := r.repo.FindAll(bson.M{"isActive": true, "status": string(consts.LoanStatusApproved)})
	if err != nil {
		logger.Error(ctx, "Loans : Error while fetching approved loans %v", err.Error())
		return nil, err
	}
	return loans, nil
}

// ReplaceLoan persists the full loan document, payments included.
func (r *LoanRepository) ReplaceLoan(ctx context.Context, loan *models.Loan) error {
	loan.UpdatedAt = time.Now()
	err := r.repo.Replace(bson.M{"_id": loan.LoanId}, *loan)
	if err != nil {
		logger.Error(ctx, "Loans : Error while replacing %v : %v", loan.LoanId.Hex(), err.Error())
		return err
	}
	return nil
}

func (r *LoanRepository) UpdateLoanFields(ctx context.Context, loanId primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	err := r.repo.Update(bson.M{"_id": loanId}, fields)
	if err != nil {
		logger.Error(ctx, "Loans : Error while updating %v : %v", loanId.Hex(), err.Error())
		return err
	}
	return nil
}

func (r *LoanRepository) SoftDeleteLoan(ctx context.Context, loanId primitive.ObjectID) error {
	return r.UpdateLoanFields(ctx, loanId, bson.M{"isActive": false})
}

// PurgeLoans hard deletes every loan document. Test environments only.
func (r *LoanRepository) PurgeLoans(ctx context.Context) (int64, error) {
	deleted, err := r.repo.DeleteMany(bson.M{})
	if err != nil {
		logger.Error(ctx, "Loans : Error while purging %v", err.Error())
		return 0, err
	}
	logger.Info(ctx, "Loans : purge removed %d documents", deleted)
	return deleted, nil
}
