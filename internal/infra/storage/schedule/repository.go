package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписаний и блокировок ресурсов
// Расписание (окно + перерывы по дням недели) и блокировки авторуются
// персоналом; движок доступности их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekSchedule получает недельное расписание ресурса
// Возвращает ErrScheduleNotFound, если ресурс не настроен - вызывающая
// сторона применяет дефолтное окно (domain.DefaultDaySchedule)
func (r *Repository) GetWeekSchedule(ctx context.Context, resourceID int64) (*domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"is_open",
		"open_minute",
		"close_minute",
	).
		From("resource_schedules").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := &domain.WeekSchedule{ResourceID: resourceID}
	found := false

	for rows.Next() {
		var weekday int
		var isOpen bool
		var openMinute, closeMinute sql.NullInt64

		if err := rows.Scan(&weekday, &isOpen, &openMinute, &closeMinute); err != nil {
			return nil, fmt.Errorf("%w: GetWeekSchedule - scan row: %v", ErrScanRow, err)
		}

		day := domain.DaySchedule{IsOpen: isOpen}
		if isOpen && openMinute.Valid && closeMinute.Valid {
			window, err := domain.NewInterval(int(openMinute.Int64), int(closeMinute.Int64))
			if err != nil {
				return nil, fmt.Errorf("%w: GetWeekSchedule - invalid window for weekday %d: %v", ErrScanRow, weekday, err)
			}
			day.Window = &window
		}

		week.SetForWeekday(time.Weekday(weekday), day)
		found = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - rows error: %v", ErrScanRow, err)
	}

	if !found {
		return nil, ErrScheduleNotFound
	}

	if err := r.loadBreaks(ctx, week); err != nil {
		return nil, err
	}

	return week, nil
}

// loadBreaks дозагружает перерывы в недельное расписание
func (r *Repository) loadBreaks(ctx context.Context, week *domain.WeekSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"start_minute",
		"end_minute",
	).
		From("schedule_breaks").
		Where(squirrel.Eq{"resource_id": week.ResourceID}).
		OrderBy("weekday ASC, start_minute ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaksByDay := make(map[time.Weekday][]domain.Interval)

	for rows.Next() {
		var weekday, startMinute, endMinute int
		if err := rows.Scan(&weekday, &startMinute, &endMinute); err != nil {
			return fmt.Errorf("%w: loadBreaks - scan row: %v", ErrScanRow, err)
		}

		interval, err := domain.NewInterval(startMinute, endMinute)
		if err != nil {
			return fmt.Errorf("%w: loadBreaks - invalid break for weekday %d: %v", ErrScanRow, weekday, err)
		}
		breaksByDay[time.Weekday(weekday)] = append(breaksByDay[time.Weekday(weekday)], interval)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBreaks - rows error: %v", ErrScanRow, err)
	}

	for weekday, breaks := range breaksByDay {
		day := week.ForWeekday(referenceDate(weekday))
		day.Breaks = breaks
		week.SetForWeekday(weekday, day)
	}

	return nil
}

// UpsertWeekSchedule полностью заменяет недельное расписание ресурса
// Вызывается внутри транзакции (dbmetrics.WithTx), чтобы замена была атомарной
func (r *Repository) UpsertWeekSchedule(ctx context.Context, week *domain.WeekSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Удаляем старое расписание и перерывы
	for _, table := range []string{"schedule_breaks", "resource_schedules"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"resource_id": week.ResourceID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpsertWeekSchedule - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: UpsertWeekSchedule - execute delete: %v", ErrExecQuery, err)
		}
	}

	// Вставляем новое расписание по дням недели
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day := week.ForWeekday(referenceDate(weekday))

		var openMinute, closeMinute *int
		if day.IsOpen && day.Window != nil {
			openMinute = &day.Window.StartMinute
			closeMinute = &day.Window.EndMinute
		}

		query, args, err := psqlbuilder.Insert("resource_schedules").
			Columns("resource_id", "weekday", "is_open", "open_minute", "close_minute").
			Values(week.ResourceID, int(weekday), day.IsOpen, openMinute, closeMinute).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpsertWeekSchedule - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: UpsertWeekSchedule - execute insert: %v", ErrExecQuery, err)
		}

		for _, brk := range day.Breaks {
			query, args, err := psqlbuilder.Insert("schedule_breaks").
				Columns("resource_id", "weekday", "start_minute", "end_minute").
				Values(week.ResourceID, int(weekday), brk.StartMinute, brk.EndMinute).
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: UpsertWeekSchedule - build break insert: %v", ErrBuildQuery, err)
			}
			if _, err := executor.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: UpsertWeekSchedule - execute break insert: %v", ErrExecQuery, err)
			}
		}
	}

	return nil
}

// CreateBlock создает блокировку ресурса (полнодневную или частичную)
func (r *Repository) CreateBlock(ctx context.Context, block *domain.ResourceBlock) (*domain.ResourceBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var startMinute, endMinute *int
	if block.Interval != nil {
		startMinute = &block.Interval.StartMinute
		endMinute = &block.Interval.EndMinute
	}

	query, args, err := psqlbuilder.Insert("resource_blocks").
		Columns(
			"resource_id",
			"start_date",
			"end_date",
			"start_minute",
			"end_minute",
			"reason",
		).
		Values(
			block.ResourceID,
			block.StartDate,
			block.EndDate,
			startMinute,
			endMinute,
			block.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// DeleteBlock удаляет блокировку ресурса ("разблокировка")
// Блокировки неизменяемы после создания - их можно только удалить
func (r *Repository) DeleteBlock(ctx context.Context, resourceID, blockID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("resource_blocks").
		Where(squirrel.Eq{"id": blockID, "resource_id": resourceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// GetBlocksForDate получает блокировки ресурса, действующие на указанную дату
func (r *Repository) GetBlocksForDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.ResourceBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"start_date",
		"end_date",
		"start_minute",
		"end_minute",
		"reason",
		"created_at",
	).
		From("resource_blocks").
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("start_date ASC, start_minute ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocksForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocksForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// GetBlocksByResource получает все блокировки ресурса (для админского списка)
func (r *Repository) GetBlocksByResource(ctx context.Context, resourceID int64) ([]*domain.ResourceBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"start_date",
		"end_date",
		"start_minute",
		"end_minute",
		"reason",
		"created_at",
	).
		From("resource_blocks").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("start_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocksByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocksByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// scanBlocks сканирует результаты запроса в слайс блокировок
func scanBlocks(rows *sql.Rows) ([]*domain.ResourceBlock, error) {
	blocks := make([]*domain.ResourceBlock, 0)

	for rows.Next() {
		var block domain.ResourceBlock
		var startMinute, endMinute sql.NullInt64
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.ResourceID,
			&block.StartDate,
			&block.EndDate,
			&startMinute,
			&endMinute,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}

		if startMinute.Valid && endMinute.Valid {
			interval, err := domain.NewInterval(int(startMinute.Int64), int(endMinute.Int64))
			if err != nil {
				return nil, fmt.Errorf("%w: scanBlocks - invalid block interval: %v", ErrScanRow, err)
			}
			block.Interval = &interval
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// referenceDate возвращает дату с нужным днём недели для обхода WeekSchedule
// 2025-11-02 - воскресенье (time.Sunday == 0)
func referenceDate(weekday time.Weekday) time.Time {
	return time.Date(2025, time.November, 2+int(weekday), 0, 0, 0, 0, time.UTC)
}
