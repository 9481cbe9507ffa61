package availability

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/dto"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Weekdays are the column headers, Sunday first.
var Weekdays = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// BuildMonthGrid lays out a month in a Sunday-first 7-column grid. Zero
// year or month means the current one. Past days are never available;
// today only counts times still ahead of the clock.
func (r *Resolver) BuildMonthGrid(
	ctx context.Context,
	p partition.Partition,
	year, month int,
) (*dto.MonthGridDTO, error) {

	today := clock.Today(r.clock)
	nowHM := clock.NowHM(r.clock)

	if year == 0 {
		year = today.Year
	}
	if month == 0 {
		month = today.Month
	}
	if year < 1 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_day")
	}

	first := calendar.Date{Year: year, Month: month, Day: 1}
	lead := int(first.Weekday())
	days := calendar.DaysIn(year, month)

	grid := &dto.MonthGridDTO{
		Year:      year,
		Month:     month,
		MonthName: monthNames[month-1],
		Weekdays:  Weekdays,
		Cells:     make([]dto.DayCellDTO, 0, lead+days),
	}

	for i := 0; i < lead; i++ {
		grid.Cells = append(grid.Cells, dto.DayCellDTO{Placeholder: true})
	}

	for day := 1; day <= days; day++ {
		d := calendar.Date{Year: year, Month: month, Day: day}
		cell := dto.DayCellDTO{
			Day:   day,
			Date:  d.String(),
			Past:  d.Before(today),
			Today: d.Equal(today),
		}

		// Past days are not read, so they are never seeded either.
		if !cell.Past {
			slots, err := r.ResolveDay(ctx, p, d)
			if err != nil {
				return nil, err
			}
			cell.Available = len(openTimes(slots, d, today, nowHM)) > 0
		}

		grid.Cells = append(grid.Cells, cell)
	}

	return grid, nil
}
