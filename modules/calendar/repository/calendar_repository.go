package repository

import (
	"context"
	"database/sql"
	"time"

	"hangout-api/core/database"
	"hangout-api/core/logger"
	"hangout-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// CalendarRepository handles calendar connection, event and preference storage
type CalendarRepository struct {
	DB database.Database
}

func NewCalendarRepository(db database.Database) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

// CalendarRepositoryInterface defines the repository contract
type CalendarRepositoryInterface interface {
	// Connections
	CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error)
	UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error
	GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	GetConnectionsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error)
	DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error

	// Events
	SaveEvent(ctx context.Context, event *entity.CalendarEvent) error
	GetEventsByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) error

	// Schedule preferences
	GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.SchedulePreferences, error)
	UpsertPreferences(ctx context.Context, prefs *entity.SchedulePreferences) error
}

// ===================== Connections =====================

func (r *CalendarRepository) CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	query := `
		INSERT INTO calendar_connections (user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active, created_at, updated_at
	`

	var created entity.CalendarConnection
	err := r.DB.GetContext(ctx, &created, query,
		conn.UserID, conn.Provider, conn.AccessToken, conn.RefreshToken,
		conn.TokenExpiresAt, conn.CalendarEmail, conn.IsActive)
	if err != nil {
		logger.Error("CalendarRepository:CreateConnection:Error:", err)
		return nil, err
	}

	return &created, nil
}

func (r *CalendarRepository) UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		UPDATE calendar_connections
		SET access_token = $1, refresh_token = $2, token_expires_at = $3, calendar_email = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
	`
	err := r.DB.ExecContext(ctx, query,
		conn.AccessToken, conn.RefreshToken, conn.TokenExpiresAt,
		conn.CalendarEmail, conn.IsActive, conn.ID)
	if err != nil {
		logger.Error("CalendarRepository:UpdateConnection:Error:", err)
	}
	return err
}

func (r *CalendarRepository) GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1 AND provider = $2 AND is_active = true
	`

	var conn entity.CalendarConnection
	err := r.DB.GetContext(ctx, &conn, query, userID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetConnectionByUserAndProvider:Error:", err)
		return nil, err
	}

	return &conn, nil
}

func (r *CalendarRepository) GetConnectionsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var conns []entity.CalendarConnection
	err := r.DB.SelectContext(ctx, &conns, query, userID)
	if err != nil {
		logger.Error("CalendarRepository:GetConnectionsByUserID:Error:", err)
		return nil, err
	}

	return conns, nil
}

func (r *CalendarRepository) DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error {
	query := `UPDATE calendar_connections SET is_active = false, updated_at = NOW() WHERE user_id = $1 AND provider = $2`
	err := r.DB.ExecContext(ctx, query, userID, provider)
	if err != nil {
		logger.Error("CalendarRepository:DeleteConnection:Error:", err)
	}
	return err
}

// ===================== Events =====================

func (r *CalendarRepository) SaveEvent(ctx context.Context, event *entity.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (user_id, title, start_time, end_time, source, external_id, created_at, updated_at)
		VALUES (:user_id, :title, :start_time, :end_time, :source, :external_id, :created_at, :updated_at)
		RETURNING id
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, event)
	if err != nil {
		logger.Error("CalendarRepository:SaveEvent:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&event.ID)
	}
	return nil
}

func (r *CalendarRepository) GetEventsByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CalendarEvent, error) {
	query := `
		SELECT id, user_id, title, start_time, end_time, source, external_id, created_at, updated_at
		FROM calendar_events
		WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC
	`

	var events []entity.CalendarEvent
	err := r.DB.SelectContext(ctx, &events, query, userID, start, end)
	if err != nil {
		logger.Error("CalendarRepository:GetEventsByUserAndRange:Error:", err)
		return nil, err
	}

	return events, nil
}

func (r *CalendarRepository) DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) error {
	query := `DELETE FROM calendar_events WHERE id = $1 AND user_id = $2`
	err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		logger.Error("CalendarRepository:DeleteEvent:Error:", err)
	}
	return err
}

// ===================== Schedule preferences =====================

func (r *CalendarRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.SchedulePreferences, error) {
	query := `SELECT user_id, wake_minutes, sleep_minutes, updated_at FROM schedule_preferences WHERE user_id = $1`

	var prefs entity.SchedulePreferences
	err := r.DB.GetContext(ctx, &prefs, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetPreferences:Error:", err)
		return nil, err
	}

	return &prefs, nil
}

func (r *CalendarRepository) UpsertPreferences(ctx context.Context, prefs *entity.SchedulePreferences) error {
	query := `
		INSERT INTO schedule_preferences (user_id, wake_minutes, sleep_minutes, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET wake_minutes = EXCLUDED.wake_minutes, sleep_minutes = EXCLUDED.sleep_minutes, updated_at = NOW()
	`
	err := r.DB.ExecContext(ctx, query, prefs.UserID, prefs.WakeMinutes, prefs.SleepMinutes)
	if err != nil {
		logger.Error("CalendarRepository:UpsertPreferences:Error:", err)
	}
	return err
}
