package tenant

import (
	"reflect"
	"strings"

	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Guard provides GORM callback hooks that verify tenant isolation. Unlike a
// scope, the guard never adds a predicate itself: a statement on a guarded
// table that lacks one is a bug upstream, and the guard's job is to turn
// that bug into a loud, immediate error instead of a cross-tenant result.
type Guard struct {
	tenantColumn string
	tables       map[string]struct{}
}

// NewGuard creates a guard for the given tenant-partitioned tables
func NewGuard(tables ...string) *Guard {
	set := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		set[t] = struct{}{}
	}
	return &Guard{
		tenantColumn: "tenant_id",
		tables:       set,
	}
}

// Register installs the guard callbacks on a GORM DB
func (g *Guard) Register(db *gorm.DB) {
	_ = db.Callback().Query().Before("gorm:query").Register("tenant:guard_query", g.verifyPredicate)
	_ = db.Callback().Row().Before("gorm:row").Register("tenant:guard_row", g.verifyPredicate)
	_ = db.Callback().Update().Before("gorm:update").Register("tenant:guard_update", g.verifyPredicate)
	_ = db.Callback().Delete().Before("gorm:delete").Register("tenant:guard_delete", g.verifyPredicate)
	_ = db.Callback().Create().Before("gorm:create").Register("tenant:guard_create", g.verifyCreate)
}

// verifyPredicate fails the statement when a guarded table is read or
// mutated without a tenant predicate.
func (g *Guard) verifyPredicate(db *gorm.DB) {
	if !g.guarded(db) || g.exempt(db) {
		return
	}
	if g.hasTenantCondition(db) {
		return
	}

	logger.L(db.Statement.Context).Error("Tenant predicate missing on partitioned table",
		zap.String("table", g.tableName(db)),
	)
	_ = db.AddError(shared.ErrIsolationViolation)
}

// verifyCreate fails inserts into guarded tables whose rows carry no tenant
func (g *Guard) verifyCreate(db *gorm.DB) {
	if !g.guarded(db) || g.exempt(db) {
		return
	}
	if db.Statement.Schema == nil {
		return
	}

	field := db.Statement.Schema.LookUpField(g.tenantColumn)
	if field == nil {
		return
	}

	rv := db.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if _, isZero := field.ValueOf(db.Statement.Context, rv.Index(i)); isZero {
				g.failCreate(db)
				return
			}
		}
	case reflect.Struct:
		if _, isZero := field.ValueOf(db.Statement.Context, rv); isZero {
			g.failCreate(db)
		}
	}
}

func (g *Guard) failCreate(db *gorm.DB) {
	logger.L(db.Statement.Context).Error("Insert into partitioned table without tenant",
		zap.String("table", g.tableName(db)),
	)
	_ = db.AddError(shared.ErrIsolationViolation)
}

// guarded reports whether the statement targets a guarded table
func (g *Guard) guarded(db *gorm.DB) bool {
	_, ok := g.tables[g.tableName(db)]
	return ok
}

func (g *Guard) tableName(db *gorm.DB) string {
	if db.Statement.Table != "" {
		return db.Statement.Table
	}
	if db.Statement.Schema != nil {
		return db.Statement.Schema.Table
	}
	return ""
}

// exempt reports whether the statement was marked by ScopedDB.System
func (g *Guard) exempt(db *gorm.DB) bool {
	v, ok := db.Get(exemptKey)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// hasTenantCondition checks if a tenant predicate is already present
func (g *Guard) hasTenantCondition(db *gorm.DB) bool {
	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if g.exprContainsTenant(expr) {
					return true
				}
			}
		}
	}

	// Raw statements carry their predicate in the built SQL
	sql := db.Statement.SQL.String()
	return sql != "" && strings.Contains(sql, g.tenantColumn)
}

// exprContainsTenant checks if an expression references the tenant column
func (g *Guard) exprContainsTenant(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == g.tenantColumn
		}
		if col, ok := e.Column.(string); ok {
			return strings.Contains(col, g.tenantColumn)
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == g.tenantColumn
		}
	case clause.Expr:
		return strings.Contains(e.SQL, g.tenantColumn)
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if g.exprContainsTenant(cond) {
				return true
			}
		}
	case clause.OrConditions:
		// An OR branch without the tenant predicate can widen the result
		// set across tenants, so every branch must carry it.
		for _, cond := range e.Exprs {
			if !g.exprContainsTenant(cond) {
				return false
			}
		}
		return len(e.Exprs) > 0
	}
	return false
}
