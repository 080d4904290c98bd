// Package repository содержит реализацию доступа к данным в PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/fitpro/fitpro-system/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrProfileExists возвращается при попытке создать пользователя с уже занятым email.
var (
	ErrProfileExists = errors.New("profile already exists")
	// ErrProfileNotFound возвращается, если пользователь не найден.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrOfferNotFound возвращается, если акция не найдена.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrRegistrationNotFound возвращается, если заявка клиента не найдена.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrProgramNotFound возвращается, если тренировочная программа не найдена.
	ErrProgramNotFound = errors.New("program not found")
	// ErrPurchaseNotFound возвращается, если покупка не найдена.
	ErrPurchaseNotFound = errors.New("purchase not found")
)

// PostgresRepository предоставляет доступ к хранилищу данных в PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delays := []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

	for i := 0; i <= len(delays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		// Если ошибка контекста — выходим сразу
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected {
				if i < len(delays) {
					time.Sleep(delays[i])
					continue
				}
			}
		}

		if isConnectionError(err) {
			if i < len(delays) {
				time.Sleep(delays[i])
				continue
			}
		}

		break
	}
	return err
}

func isConnectionError(err error) bool {
	// Упрощенная проверка на ошибки соединения
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateProfile создаёт нового пользователя.
func (r *PostgresRepository) CreateProfile(ctx context.Context, email, fullName string, role model.Role, passwordHash []byte) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (email, full_name, role, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`,
		email, fullName, string(role), passwordHash,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrProfileExists, email)
		}
		return uuid.Nil, fmt.Errorf("create profile: %w", err)
	}
	return id, nil
}

// GetProfileByEmail возвращает пользователя по email.
func (r *PostgresRepository) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, full_name, role, password_hash, created_at FROM profiles WHERE email = $1`,
		email,
	)

	var p model.Profile
	var role string
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &role, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Role = model.Role(role)

	return &p, nil
}

// ListSports возвращает активные виды спорта по алфавиту.
func (r *PostgresRepository) ListSports(ctx context.Context) ([]model.Sport, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, icon, is_active
		 FROM sports
		 WHERE is_active
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("select sports: %w", err)
	}
	defer rows.Close()

	var res []model.Sport
	for rows.Next() {
		var s model.Sport
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Icon, &s.IsActive); err != nil {
			return nil, fmt.Errorf("scan sport: %w", err)
		}
		res = append(res, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// ListCategories возвращает уровни подготовки в порядке отображения.
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]model.AthleteCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, description, display_order
		 FROM athlete_categories
		 ORDER BY display_order`,
	)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var res []model.AthleteCategory
	for rows.Next() {
		var c model.AthleteCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		res = append(res, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// ListPricingPlans возвращает активные тарифы с названиями спорта и уровня.
func (r *PostgresRepository) ListPricingPlans(ctx context.Context) ([]model.PricingPlan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.sport_id, p.category_id, p.price, p.currency, p.features, p.is_active,
		        s.name, c.name
		 FROM pricing_plans p
		 JOIN sports s ON s.id = p.sport_id
		 JOIN athlete_categories c ON c.id = p.category_id
		 WHERE p.is_active`,
	)
	if err != nil {
		return nil, fmt.Errorf("select pricing plans: %w", err)
	}
	defer rows.Close()

	var res []model.PricingPlan
	for rows.Next() {
		var p model.PricingPlan
		if err := rows.Scan(&p.ID, &p.SportID, &p.CategoryID, &p.PriceCents, &p.Currency,
			&p.Features, &p.IsActive, &p.SportName, &p.CategoryName); err != nil {
			return nil, fmt.Errorf("scan pricing plan: %w", err)
		}
		res = append(res, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

const offerColumns = `id, pricing_plan_id, original_price, offer_price,
	discount_percentage, start_date, end_date, paused_at, created_at`

func scanOffers(rows pgx.Rows) ([]model.PriceOffer, error) {
	defer rows.Close()

	var res []model.PriceOffer
	for rows.Next() {
		var o model.PriceOffer
		if err := rows.Scan(&o.ID, &o.PricingPlanID, &o.OriginalPriceCents, &o.OfferPriceCents,
			&o.DiscountPercentage, &o.StartDate, &o.EndDate, &o.PausedAt, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		res = append(res, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// ListOffers возвращает все акции, новые первыми.
func (r *PostgresRepository) ListOffers(ctx context.Context) ([]model.PriceOffer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+offerColumns+` FROM price_offers ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select offers: %w", err)
	}
	return scanOffers(rows)
}

// ListOffersByPlans возвращает акции для указанных тарифов.
func (r *PostgresRepository) ListOffersByPlans(ctx context.Context, planIDs []uuid.UUID) ([]model.PriceOffer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+offerColumns+` FROM price_offers WHERE pricing_plan_id = ANY($1)`,
		planIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("select offers by plans: %w", err)
	}
	return scanOffers(rows)
}

// GetOffer возвращает акцию по идентификатору.
func (r *PostgresRepository) GetOffer(ctx context.Context, id uuid.UUID) (*model.PriceOffer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM price_offers WHERE id = $1`,
		id,
	)

	var o model.PriceOffer
	err := row.Scan(&o.ID, &o.PricingPlanID, &o.OriginalPriceCents, &o.OfferPriceCents,
		&o.DiscountPercentage, &o.StartDate, &o.EndDate, &o.PausedAt, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}

	return &o, nil
}

// CreateOffer сохраняет новую акцию и возвращает её идентификатор.
func (r *PostgresRepository) CreateOffer(ctx context.Context, o model.PriceOffer) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO price_offers
		     (pricing_plan_id, original_price, offer_price, discount_percentage, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		o.PricingPlanID, o.OriginalPriceCents, o.OfferPriceCents,
		o.DiscountPercentage, o.StartDate, o.EndDate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create offer: %w", err)
	}
	return id, nil
}

// UpdateOffer обновляет параметры существующей акции.
func (r *PostgresRepository) UpdateOffer(ctx context.Context, o model.PriceOffer) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE price_offers
		 SET pricing_plan_id = $2, original_price = $3, offer_price = $4,
		     discount_percentage = $5, start_date = $6, end_date = $7
		 WHERE id = $1`,
		o.ID, o.PricingPlanID, o.OriginalPriceCents, o.OfferPriceCents,
		o.DiscountPercentage, o.StartDate, o.EndDate,
	)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOfferNotFound
	}
	return nil
}

// DeleteOffer удаляет акцию.
func (r *PostgresRepository) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM price_offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOfferNotFound
	}
	return nil
}

// SetOfferPaused выставляет или снимает отметку приостановки акции.
func (r *PostgresRepository) SetOfferPaused(ctx context.Context, id uuid.UUID, pausedAt *time.Time) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE price_offers SET paused_at = $2 WHERE id = $1`,
		id, pausedAt,
	)
	if err != nil {
		return fmt.Errorf("set offer paused: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOfferNotFound
	}
	return nil
}

// CreateRegistration сохраняет новую заявку клиента.
func (r *PostgresRepository) CreateRegistration(ctx context.Context, reg model.ClientRegistration) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO client_registrations
			     (user_id, full_name, email, phone, age, weight, height, goal_weight,
			      fitness_goal, activity_level, dietary_preferences, medical_conditions, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 RETURNING id`,
			reg.UserID, reg.FullName, reg.Email, reg.Phone, reg.Age, reg.Weight, reg.Height,
			reg.GoalWeight, reg.FitnessGoal, reg.ActivityLevel, reg.DietaryPrefs,
			reg.MedicalConditions, string(reg.Status),
		).Scan(&id)
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("create registration: %w", err)
	}
	return id, nil
}

const registrationColumns = `id, user_id, full_name, email, phone, age, weight, height,
	goal_weight, fitness_goal, activity_level, dietary_preferences, medical_conditions,
	status, created_at`

func scanRegistration(row pgx.Row) (*model.ClientRegistration, error) {
	var reg model.ClientRegistration
	var status string
	err := row.Scan(&reg.ID, &reg.UserID, &reg.FullName, &reg.Email, &reg.Phone,
		&reg.Age, &reg.Weight, &reg.Height, &reg.GoalWeight, &reg.FitnessGoal,
		&reg.ActivityLevel, &reg.DietaryPrefs, &reg.MedicalConditions, &status, &reg.CreatedAt)
	if err != nil {
		return nil, err
	}
	reg.Status = model.RegistrationStatus(status)
	return &reg, nil
}

// GetRegistrationByUser возвращает последнюю заявку, привязанную к пользователю.
func (r *PostgresRepository) GetRegistrationByUser(ctx context.Context, userID uuid.UUID) (*model.ClientRegistration, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+`
		 FROM client_registrations
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	return reg, nil
}

// ListRegistrations возвращает заявки клиентов, новые первыми.
// Пустой статус означает отсутствие фильтра.
func (r *PostgresRepository) ListRegistrations(ctx context.Context, status model.RegistrationStatus) ([]model.ClientRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM client_registrations`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select registrations: %w", err)
	}
	defer rows.Close()

	var res []model.ClientRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		res = append(res, *reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// UpdateRegistrationStatus обновляет статус заявки клиента.
func (r *PostgresRepository) UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE client_registrations SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// AddProgress сохраняет запись о прогрессе клиента.
func (r *PostgresRepository) AddProgress(ctx context.Context, clientID uuid.UUID, weight float64, notes string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO client_progress (client_id, weight, notes) VALUES ($1, $2, $3) RETURNING id`,
		clientID, weight, notes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("add progress: %w", err)
	}
	return id, nil
}

// ListProgressByClient возвращает записи прогресса клиента, новые первыми.
func (r *PostgresRepository) ListProgressByClient(ctx context.Context, clientID uuid.UUID) ([]model.ProgressEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, client_id, weight, notes, recorded_at
		 FROM client_progress
		 WHERE client_id = $1
		 ORDER BY recorded_at DESC`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("select progress: %w", err)
	}
	defer rows.Close()

	var res []model.ProgressEntry
	for rows.Next() {
		var e model.ProgressEntry
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Weight, &e.Notes, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		res = append(res, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// ListPrograms возвращает активные программы с фильтрами по полу и категории.
// Пустое значение фильтра означает отсутствие ограничения.
func (r *PostgresRepository) ListPrograms(ctx context.Context, gender string, category model.ProgramCategory) ([]model.AthleteProgram, error) {
	query := `SELECT id, name, gender, category, duration_weeks, description, price, offer_price, file_url, is_active
	          FROM athlete_programs
	          WHERE is_active`
	args := []any{}
	if gender != "" {
		args = append(args, gender)
		query += fmt.Sprintf(` AND gender = $%d`, len(args))
	}
	if category != "" {
		args = append(args, string(category))
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	query += ` ORDER BY category, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select programs: %w", err)
	}
	defer rows.Close()

	var res []model.AthleteProgram
	for rows.Next() {
		var p model.AthleteProgram
		var cat string
		if err := rows.Scan(&p.ID, &p.Name, &p.Gender, &cat, &p.DurationWeeks,
			&p.Description, &p.PriceCents, &p.OfferPriceCents, &p.FileURL, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		p.Category = model.ProgramCategory(cat)
		res = append(res, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// GetProgram возвращает программу по идентификатору.
func (r *PostgresRepository) GetProgram(ctx context.Context, id uuid.UUID) (*model.AthleteProgram, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, gender, category, duration_weeks, description, price, offer_price, file_url, is_active
		 FROM athlete_programs
		 WHERE id = $1`,
		id,
	)

	var p model.AthleteProgram
	var category string
	err := row.Scan(&p.ID, &p.Name, &p.Gender, &category, &p.DurationWeeks,
		&p.Description, &p.PriceCents, &p.OfferPriceCents, &p.FileURL, &p.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("get program: %w", err)
	}
	p.Category = model.ProgramCategory(category)

	return &p, nil
}

// CreatePurchase сохраняет покупку программы с подтверждением оплаты.
func (r *PostgresRepository) CreatePurchase(ctx context.Context, p model.ProgramPurchase) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO program_purchases
			     (user_id, program_id, amount, payment_method, payment_proof_url, status)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			p.UserID, p.ProgramID, p.AmountCents, string(p.PaymentMethod),
			p.PaymentProofURL, string(p.Status),
		).Scan(&id)
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("create purchase: %w", err)
	}
	return id, nil
}

const purchaseColumns = `pp.id, pp.user_id, pp.program_id, ap.name, pp.amount,
	pp.payment_method, pp.payment_proof_url, pp.status, pp.admin_notes,
	pp.reviewed_by, pp.reviewed_at, pp.created_at`

func scanPurchases(rows pgx.Rows) ([]model.ProgramPurchase, error) {
	defer rows.Close()

	var res []model.ProgramPurchase
	for rows.Next() {
		var p model.ProgramPurchase
		var method, status string
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProgramID, &p.ProgramName, &p.AmountCents,
			&method, &p.PaymentProofURL, &status, &p.AdminNotes,
			&p.ReviewedBy, &p.ReviewedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.PaymentMethod = model.PaymentMethod(method)
		p.Status = model.PurchaseStatus(status)
		res = append(res, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// ListPurchases возвращает все покупки, новые первыми.
func (r *PostgresRepository) ListPurchases(ctx context.Context) ([]model.ProgramPurchase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+purchaseColumns+`
		 FROM program_purchases pp
		 JOIN athlete_programs ap ON ap.id = pp.program_id
		 ORDER BY pp.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select purchases: %w", err)
	}
	return scanPurchases(rows)
}

// ListPurchasesByUser возвращает покупки пользователя, новые первыми.
func (r *PostgresRepository) ListPurchasesByUser(ctx context.Context, userID uuid.UUID) ([]model.ProgramPurchase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+purchaseColumns+`
		 FROM program_purchases pp
		 JOIN athlete_programs ap ON ap.id = pp.program_id
		 WHERE pp.user_id = $1
		 ORDER BY pp.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select purchases by user: %w", err)
	}
	return scanPurchases(rows)
}

// UpdatePurchaseReview фиксирует решение тренера по покупке.
func (r *PostgresRepository) UpdatePurchaseReview(ctx context.Context, id uuid.UUID, status model.PurchaseStatus, notes string, reviewerID uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE program_purchases
		 SET status = $2, admin_notes = $3, reviewed_by = $4, reviewed_at = now()
		 WHERE id = $1`,
		id, string(status), notes, reviewerID,
	)
	if err != nil {
		return fmt.Errorf("update purchase review: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPurchaseNotFound
	}
	return nil
}
