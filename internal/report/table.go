// Package report organizes organization statistics into a table printable on console or as CSV.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/m-zajac/githubanalysis/internal/analysis"
	"github.com/m-zajac/githubanalysis/internal/stat"
)

// LimitMarker is appended to values computed from a retention limited source when the limit matters.
const LimitMarker = "†"

// DatetimeLayout is used for every timestamp in the table.
const DatetimeLayout = "2006-01-02T15-04-05Z"

// Table is a set of columns built from organization stats.
type Table struct {
	org          analysis.OrganizationStat
	persons      []string
	limitMatters bool
}

// NewTable creates Table for given stats.
// laterThan is the lower bound of the analyzed time window, nil if unbounded.
// Values from retention limited sources get LimitMarker if insertLimitFootnote is set
// and the reliability boundary may truncate data since laterThan.
func NewTable(org analysis.OrganizationStat, laterThan *time.Time, insertLimitFootnote bool) *Table {
	return &Table{
		org:          org,
		persons:      org.PersonLogins(),
		limitMatters: insertLimitFootnote && org.LimitMatters(laterThan),
	}
}

// LimitMatters tells if limited values are marked in the table.
func (t *Table) LimitMatters() bool {
	return t.limitMatters
}

// Rows returns all table rows. Every row has the same number of fields.
func (t *Table) Rows() [][]string {
	return rows(t.columns())
}

// CSV returns table as comma separated values. Fields are not escaped.
func (t *Table) CSV() string {
	return csv(t.Rows())
}

// ColumnPair is a body column paired with index column of its section.
type ColumnPair struct {
	Index  []string
	Values []string
}

// ColumnStack returns every body column paired with its index column.
func (t *Table) ColumnStack() []ColumnPair {
	var stack []ColumnPair
	for _, s := range t.sections() {
		for _, c := range s.body {
			stack = append(stack, ColumnPair{
				Index:  s.index.values(),
				Values: c.values(),
			})
		}
	}

	return stack
}

// WriteColumnStack prints column stack line by line, as "index: value", with blank line after each column.
func (t *Table) WriteColumnStack(w io.Writer) error {
	fill := func(idx int, vs []string) string {
		if idx < len(vs) {
			return vs[idx]
		}
		return " "
	}

	for _, pair := range t.ColumnStack() {
		n := len(pair.Index)
		if len(pair.Values) > n {
			n = len(pair.Values)
		}
		for i := 0; i < n; i++ {
			if _, err := fmt.Fprintf(w, "%s: %s\n", fill(i, pair.Index), fill(i, pair.Values)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

type column interface {
	values() []string
}

// personColumn holds organization wide values of a metric followed by value for every person.
type personColumn struct {
	header            string
	total             string
	repositoryAverage string
	personAverage     string
	personValues      []string
}

func (c personColumn) values() []string {
	return append([]string{c.header, c.total, c.repositoryAverage, c.personAverage, ""}, c.personValues...)
}

type miscColumn struct {
	header string
	rest   []string
}

func (c miscColumn) values() []string {
	return append([]string{c.header}, c.rest...)
}

type section struct {
	index column
	body  []column
}

func (t *Table) sections() []section {
	body := make([]column, 0, len(metricColumns))
	for _, m := range metricColumns {
		body = append(body, t.metricColumn(m))
	}

	return []section{
		{
			index: t.indexColumn(),
			body:  body,
		},
		{
			index: t.limitsIndexColumn(),
			body:  []column{t.limitsColumn()},
		},
	}
}

// columns returns all columns of all sections, sections separated by blank column.
func (t *Table) columns() []column {
	var cs []column
	for i, s := range t.sections() {
		if i > 0 {
			cs = append(cs, miscColumn{})
		}
		cs = append(cs, s.index)
		cs = append(cs, s.body...)
	}

	return cs
}

func (t *Table) indexColumn() personColumn {
	return personColumn{
		header:            "",
		total:             "Total",
		repositoryAverage: "Repository Average",
		personAverage:     "User Average",
		personValues:      t.persons,
	}
}

func (t *Table) metricColumn(m metricColumn) personColumn {
	values := make([]string, 0, len(t.persons))
	for _, login := range t.persons {
		values = append(values, t.cell(m.person(t.org.Persons[login])))
	}

	return personColumn{
		header:            m.header,
		total:             t.cell(m.total(t.org)),
		repositoryAverage: t.cell(m.perRepository(t.org)),
		personAverage:     t.cell(m.perPerson(t.org)),
		personValues:      values,
	}
}

func (t *Table) limitsIndexColumn() miscColumn {
	affected := ""
	if t.limitMatters {
		affected = "Value effected by limits"
	}
	unreliable := ""
	if len(t.org.UnreliableRepositories()) > 0 {
		unreliable = "Repositories with no events in time window analyzed"
	}

	return miscColumn{
		rest: []string{
			"Repositories analyzed",
			"Earliest event analyzed",
			"Limiting lower bound",
			"Limiting repo",
			"Recommendation",
			affected,
			unreliable,
		},
	}
}

func (t *Table) limitsColumn() miscColumn {
	earliestEvent := "N/A"
	if e := t.org.EarliestEvent(); e != nil {
		earliestEvent = e.UTC().Format(DatetimeLayout)
	}
	boundaryDate, boundaryRepo := "N/A", "N/A"
	boundary, hasBoundary := t.org.ReliabilityBoundary()
	if hasBoundary {
		boundaryDate = boundary.At.UTC().Format(DatetimeLayout)
		boundaryRepo = boundary.Repository
	}

	var recommendation string
	switch {
	case !t.limitMatters:
		recommendation = "Rock on!"
	case hasBoundary:
		recommendation = "use command line argument --later-than=" + boundaryDate
	default:
		recommendation = "Loosen up your time window restriction. None of the repositories have event data."
	}

	affected := ""
	if t.limitMatters {
		affected = LimitMarker
	}
	unreliable := ""
	if rs := t.org.UnreliableRepositories(); len(rs) > 0 {
		unreliable = quote(strings.Join(rs, ", "))
	}

	return miscColumn{
		rest: []string{
			quote(strings.Join(t.org.RepositoryNames(), ", ")),
			earliestEvent,
			boundaryDate,
			boundaryRepo,
			recommendation,
			affected,
			unreliable,
		},
	}
}

// cell formats value, marking it when it comes from a limited source and the limit matters.
func (t *Table) cell(v cellValue) string {
	if v.bounded && t.limitMatters {
		return v.text + LimitMarker
	}
	return v.text
}

// cellValue is a formatted statistic that remembers its provenance.
type cellValue struct {
	text    string
	bounded bool
}

func valueOf[P stat.Provenance, T any](s stat.Stat[P, T]) cellValue {
	return cellValue{
		text:    s.String(),
		bounded: s.IsBounded(),
	}
}

func plain(text string) cellValue {
	return cellValue{text: text}
}

func quote(s string) string {
	return `"` + s + `"`
}

// rows transposes columns into rows, padding shorter columns with empty fields.
func rows(columns []column) [][]string {
	values := make([][]string, 0, len(columns))
	var height int
	for _, c := range columns {
		vs := c.values()
		if len(vs) > height {
			height = len(vs)
		}
		values = append(values, vs)
	}

	rs := make([][]string, 0, height)
	for i := 0; i < height; i++ {
		row := make([]string, 0, len(values))
		for _, vs := range values {
			if i < len(vs) {
				row = append(row, vs[i])
			} else {
				row = append(row, "")
			}
		}
		rs = append(rs, row)
	}

	return rs
}

func csv(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, strings.Join(r, ","))
	}

	return strings.Join(lines, "\n")
}
