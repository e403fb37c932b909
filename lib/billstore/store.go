package billstore

import (
	"context"
	"database/sql"
	"errors"
	"legiscraper/lib/scrapers/legislature"
	"time"

	_ "embed"
)

//go:embed schema.sql
var Schema string

var ErrBillNotFound = errors.New("bill not found")

type Store struct {
	db *sql.DB
}

// NewStore expects `database` to already have Schema applied.
func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func (s Store) PushSessions(ctx context.Context, sessions []legislature.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, session := range sessions {
		_, err := tx.ExecContext(
			ctx,
			`insert into session (year, name, url) values (?, ?, ?)
			on conflict (year, name) do update set url = excluded.url`,
			session.Year, session.Name, session.Url,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) GetSessions(ctx context.Context, year int) ([]legislature.Session, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select year, name, url from session where year = ? order by name`,
		year,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []legislature.Session
	for rows.Next() {
		var session legislature.Session
		err := rows.Scan(&session.Year, &session.Name, &session.Url)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertRecord(ctx context.Context, tx execer, at time.Time, r legislature.Record) error {
	_, err := tx.ExecContext(
		ctx,
		`insert into bill (state, session, bill_id, chamber, name, remote_url, scraped_at)
		values (?, ?, ?, ?, ?, ?, ?)
		on conflict (state, session, bill_id) do update set
			chamber = excluded.chamber,
			name = excluded.name,
			remote_url = excluded.remote_url,
			scraped_at = excluded.scraped_at`,
		r.State, r.Session, r.BillId, string(r.Chamber), r.BillName, r.RemoteUrl, at.Unix(),
	)
	return err
}

// PushRecords saves bill summaries, details saved earlier are kept.
func (s Store) PushRecords(ctx context.Context, at time.Time, records []legislature.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		err := upsertRecord(ctx, tx, at, r)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PushDetail saves a bill along with its sponsor, actions and versions,
// replacing whatever was saved for it before.
func (s Store) PushDetail(ctx context.Context, at time.Time, detail legislature.BillDetail) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	r := detail.Record
	err = upsertRecord(ctx, tx, at, r)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		`update bill set sponsor = ?, detail_scraped_at = ?
		where state = ? and session = ? and bill_id = ?`,
		detail.Sponsor, at.Unix(), r.State, r.Session, r.BillId,
	)
	if err != nil {
		return err
	}

	for _, table := range []string{"action", "version"} {
		_, err = tx.ExecContext(
			ctx,
			"delete from "+table+" where state = ? and session = ? and bill_id = ?",
			r.State, r.Session, r.BillId,
		)
		if err != nil {
			return err
		}
	}

	for i, a := range detail.Actions {
		var chamber sql.NullString
		if a.Chamber != nil {
			chamber = sql.NullString{String: string(*a.Chamber), Valid: true}
		}
		_, err = tx.ExecContext(
			ctx,
			`insert into action (state, session, bill_id, idx, chamber, text, date)
			values (?, ?, ?, ?, ?, ?, ?)`,
			r.State, r.Session, r.BillId, i, chamber, a.Text, a.Date,
		)
		if err != nil {
			return err
		}
	}

	for i, v := range detail.Versions {
		_, err = tx.ExecContext(
			ctx,
			`insert into version (state, session, bill_id, idx, name, url)
			values (?, ?, ?, ?, ?, ?)`,
			r.State, r.Session, r.BillId, i, v.Name, v.Url,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

type StoredBill struct {
	Detail legislature.BillDetail
	// when the summary was last saved
	ScrapedAt time.Time
	// zero when only the summary was ever saved
	DetailScrapedAt time.Time
}

func (s Store) GetBill(ctx context.Context, state, session, billId string) (StoredBill, error) {
	var out StoredBill
	var chamber string
	var sponsor sql.NullString
	var scrapedAt int64
	var detailScrapedAt sql.NullInt64

	err := s.db.QueryRowContext(
		ctx,
		`select chamber, name, remote_url, sponsor, scraped_at, detail_scraped_at from bill
		where state = ? and session = ? and bill_id = ?`,
		state, session, billId,
	).Scan(&chamber, &out.Detail.Record.BillName, &out.Detail.Record.RemoteUrl, &sponsor, &scrapedAt, &detailScrapedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredBill{}, ErrBillNotFound
	}
	if err != nil {
		return StoredBill{}, err
	}

	out.Detail.Record.State = state
	out.Detail.Record.Session = session
	out.Detail.Record.BillId = billId
	out.Detail.Record.Chamber = legislature.Chamber(chamber)
	out.Detail.Sponsor = sponsor.String
	out.ScrapedAt = time.Unix(scrapedAt, 0)
	if detailScrapedAt.Valid {
		out.DetailScrapedAt = time.Unix(detailScrapedAt.Int64, 0)
	}

	out.Detail.Actions, err = s.getActions(ctx, state, session, billId)
	if err != nil {
		return StoredBill{}, err
	}
	out.Detail.Versions, err = s.getVersions(ctx, state, session, billId)
	if err != nil {
		return StoredBill{}, err
	}
	return out, nil
}

func (s Store) getActions(ctx context.Context, state, session, billId string) ([]legislature.Action, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select chamber, text, date from action
		where state = ? and session = ? and bill_id = ? order by idx`,
		state, session, billId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []legislature.Action
	for rows.Next() {
		var a legislature.Action
		var chamber sql.NullString
		err := rows.Scan(&chamber, &a.Text, &a.Date)
		if err != nil {
			return nil, err
		}
		if chamber.Valid {
			c := legislature.Chamber(chamber.String)
			a.Chamber = &c
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s Store) getVersions(ctx context.Context, state, session, billId string) ([]legislature.Version, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select name, url from version
		where state = ? and session = ? and bill_id = ? order by idx`,
		state, session, billId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []legislature.Version
	for rows.Next() {
		var v legislature.Version
		err := rows.Scan(&v.Name, &v.Url)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s Store) ListRecords(ctx context.Context, session string) ([]legislature.Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select state, session, bill_id, chamber, name, remote_url from bill
		where session = ? order by bill_id`,
		session,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []legislature.Record
	for rows.Next() {
		var r legislature.Record
		var chamber string
		err := rows.Scan(&r.State, &r.Session, &r.BillId, &chamber, &r.BillName, &r.RemoteUrl)
		if err != nil {
			return nil, err
		}
		r.Chamber = legislature.Chamber(chamber)
		out = append(out, r)
	}
	return out, rows.Err()
}
