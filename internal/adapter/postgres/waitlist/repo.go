// Package waitlist implements the waitlist entry repository using PostgreSQL.
package waitlist

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/waitlist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

const table = "waitlist"

// rankingLockKey is the advisory lock key serializing all position-mutating
// transactions ("WAIT" in ASCII). Arbitrary, but must be unique within the
// database.
const rankingLockKey int64 = 0x57414954

var columns = []string{
	"id", "email", "referral_code", "referred_by", "referral_count",
	"position", "in_top_50", "top_rank", "subscribed", "created_at",
}

// psql builds queries with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides waitlist entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new waitlist repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// q returns the transaction from context if present, otherwise the pool.
func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.pool)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an entry by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error) {
	return r.getWhere(ctx, sq.Eq{"id": id}, "get waitlist entry by id")
}

// GetByEmail returns an entry by email (case-sensitive, as stored).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	return r.getWhere(ctx, sq.Eq{"email": email}, "get waitlist entry by email")
}

// GetByReferralCode returns the entry owning the given referral code.
func (r *Repo) GetByReferralCode(ctx context.Context, code string) (*domain.WaitlistEntry, error) {
	return r.getWhere(ctx, sq.Eq{"referral_code": code}, "get waitlist entry by referral code")
}

func (r *Repo) getWhere(ctx context.Context, pred sq.Eq, op string) (*domain.WaitlistEntry, error) {
	query, args, err := psql.Select(columns...).From(table).Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, r.q(ctx), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, op)
	}

	e := row.toDomain()
	return &e, nil
}

// Count returns the total number of waitlist entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("count waitlist: build query: %w", err)
	}

	var count int
	if err := r.q(ctx).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "count waitlist")
	}

	return count, nil
}

// ListByReferralRank returns all entries in leaderboard order:
// referral_count descending, ties broken by position ascending. The
// secondary key makes repeated recomputations reproducible.
func (r *Repo) ListByReferralRank(ctx context.Context) ([]domain.WaitlistEntry, error) {
	query, args, err := psql.Select(columns...).From(table).
		OrderBy("referral_count DESC", "position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list waitlist by rank: build query: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "list waitlist by rank")
	}

	return toDomainList(rows), nil
}

// ListAll returns all entries ordered by signup time ascending.
func (r *Repo) ListAll(ctx context.Context) ([]domain.WaitlistEntry, error) {
	query, args, err := psql.Select(columns...).From(table).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list waitlist: build query: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "list waitlist")
	}

	return toDomainList(rows), nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert persists a new entry and returns the stored row.
// Returns domain.ErrAlreadyExists on a duplicate email and
// domain.ErrConflict on a referral-code or position collision.
func (r *Repo) Insert(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	query, args, err := psql.Insert(table).
		Columns("id", "email", "referral_code", "referred_by", "position", "subscribed", "created_at").
		Values(e.ID, e.Email, e.ReferralCode, e.ReferredBy, e.Position, e.Subscribed, e.CreatedAt).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("insert waitlist: build query: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, r.q(ctx), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "insert waitlist")
	}

	stored := row.toDomain()
	return &stored, nil
}

// IncrementReferralCount credits one referral to the entry and returns the
// new count. The increment is a single UPDATE so concurrent credits to the
// same referrer are never lost.
func (r *Repo) IncrementReferralCount(ctx context.Context, id uuid.UUID) (int, error) {
	query, args, err := psql.Update(table).
		Set("referral_count", sq.Expr("referral_count + 1")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING referral_count").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("increment referral count: build query: %w", err)
	}

	var count int
	if err := r.q(ctx).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "increment referral count")
	}

	return count, nil
}

// UpdatePosition moves the entry to the given position.
func (r *Repo) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	query, args, err := psql.Update(table).
		Set("position", position).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("update position: build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "update position")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update position: %w", domain.ErrNotFound)
	}

	return nil
}

// ShiftPositions increments by one the position of every entry whose
// position lies in [from, to] and returns the number of shifted rows.
// The position uniqueness constraint is deferred to commit, so the
// transient overlap with the moving entry is legal mid-transaction.
func (r *Repo) ShiftPositions(ctx context.Context, from, to int) (int64, error) {
	query, args, err := psql.Update(table).
		Set("position", sq.Expr("position + 1")).
		Where(sq.And{sq.GtOrEq{"position": from}, sq.LtOrEq{"position": to}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("shift positions: build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "shift positions")
	}

	return tag.RowsAffected(), nil
}

// SetSubscribed flips the notification opt-in flag for the given email.
func (r *Repo) SetSubscribed(ctx context.Context, email string, subscribed bool) error {
	query, args, err := psql.Update(table).
		Set("subscribed", subscribed).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("set subscribed: build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "set subscribed")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set subscribed: %w", domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Leaderboard operations
// ---------------------------------------------------------------------------

// ClearTop50 removes the leaderboard flag and rank from every entry.
// First phase of the replace-all recomputation.
func (r *Repo) ClearTop50(ctx context.Context) error {
	query, args, err := psql.Update(table).
		Set("in_top_50", false).
		Set("top_rank", nil).
		Where(sq.Or{sq.Eq{"in_top_50": true}, sq.NotEq{"top_rank": nil}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("clear top50: build query: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "clear top50")
	}

	return nil
}

// SetTop50 assigns leaderboard ranks to the given entries in one batch.
// Second phase of the replace-all recomputation.
func (r *Repo) SetTop50(ctx context.Context, slots []domain.RankSlot) error {
	if len(slots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, slot := range slots {
		query, args, err := psql.Update(table).
			Set("in_top_50", true).
			Set("top_rank", slot.Rank).
			Where(sq.Eq{"id": slot.EntryID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("set top50: build query: %w", err)
		}
		batch.Queue(query, args...)
	}

	results := r.q(ctx).SendBatch(ctx, batch)
	defer results.Close()

	for range slots {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "set top50")
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Coordination
// ---------------------------------------------------------------------------

// LockRanking takes the transaction-scoped advisory lock that serializes
// position-mutating transactions (allocate, shift, recompute). Released
// automatically at commit or rollback. Must be called inside a transaction.
func (r *Repo) LockRanking(ctx context.Context) error {
	if _, err := r.q(ctx).Exec(ctx, "SELECT pg_advisory_xact_lock($1)", rankingLockKey); err != nil {
		return postgres.MapError(err, "lock ranking")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

// entryRow mirrors the waitlist table for scany.
type entryRow struct {
	ID            uuid.UUID `db:"id"`
	Email         string    `db:"email"`
	ReferralCode  string    `db:"referral_code"`
	ReferredBy    *string   `db:"referred_by"`
	ReferralCount int       `db:"referral_count"`
	Position      int       `db:"position"`
	InTop50       bool      `db:"in_top_50"`
	TopRank       *int      `db:"top_rank"`
	Subscribed    bool      `db:"subscribed"`
	CreatedAt     time.Time `db:"created_at"`
}

func (row entryRow) toDomain() domain.WaitlistEntry {
	return domain.WaitlistEntry{
		ID:            row.ID,
		Email:         row.Email,
		ReferralCode:  row.ReferralCode,
		ReferredBy:    row.ReferredBy,
		ReferralCount: row.ReferralCount,
		Position:      row.Position,
		InTop50:       row.InTop50,
		TopRank:       row.TopRank,
		Subscribed:    row.Subscribed,
		CreatedAt:     row.CreatedAt,
	}
}

func toDomainList(rows []entryRow) []domain.WaitlistEntry {
	entries := make([]domain.WaitlistEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.toDomain()
	}
	return entries
}

func columnList() string {
	list := columns[0]
	for _, c := range columns[1:] {
		list += ", " + c
	}
	return list
}
