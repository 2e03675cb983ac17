package option

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before it is executed.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

// Func adapts an ad hoc scope into a QueryOption.
func Func(fn func(*gorm.DB) *gorm.DB) QueryOption {
	return queryOptionFunc(fn)
}

type Operator string

const (
	EQ   Operator = "="
	GTE  Operator = ">="
	LTE  Operator = "<="
	GT   Operator = ">"
	LT   Operator = "<"
	LIKE Operator = "LIKE"
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ApplyOperator adds a single WHERE condition. Field names never come from
// user input.
func ApplyOperator(cond Condition) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(cond.Field)
		if field == "" {
			return db
		}
		op := cond.Operator
		if op == "" {
			op = EQ
		}
		return db.Where(fmt.Sprintf("%s %s ?", field, op), cond.Value)
	})
}

// WithNameSearch matches a case-insensitive substring on name.
func WithNameSearch(field, term string) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ?", field), "%"+strings.ToLower(term)+"%")
	})
}

type QuerySortBy struct {
	Field     string
	Desc      bool
	Allow     map[string]bool
	Secondary string
}

func WithSortBy(sort QuerySortBy) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(sort.Field)
		if field == "" {
			field = "created_at"
		}
		if len(sort.Allow) > 0 && !sort.Allow[field] {
			field = "created_at"
		}
		dir := "asc"
		if sort.Desc {
			dir = "desc"
		}
		order := fmt.Sprintf("%s %s", field, dir)
		secondary := strings.TrimSpace(sort.Secondary)
		if secondary == "" {
			secondary = "id"
		}
		return db.Order(order + ", " + secondary + " " + dir)
	})
}

func WithLimit(limit int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// ApplyPagination seeks past the cursor of a created_at desc, id desc
// listing and fetches one extra row so callers can detect more pages.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		size := pagination.NormalizeSize(page.PageSize)

		if token := strings.TrimSpace(page.PageToken); token != "" {
			cursor, err := pagination.DecodeCursor(token)
			if err == nil && cursor != nil {
				createdAt, terr := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
				id, ierr := strconv.ParseInt(cursor.ID, 10, 64)
				if terr == nil && ierr == nil {
					db = db.Where("(created_at < ?) OR (created_at = ? AND id < ?)", createdAt, createdAt, id)
				}
			}
		}

		return db.Limit(size + 1)
	})
}
