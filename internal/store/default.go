package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"sort"
	"time"

	"git.lost.host/meutraa/beatmap/internal/beatmap"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidLimit = errors.New("limit must be at least 1")
)

type DefaultStore struct {
	db *sql.DB
}

// Sum hashes the parts in order, used as the key of an input.
func Sum(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (s *DefaultStore) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrapf(err, "unable to open %v", path)
	}

	initStatement := `
	create table if not exists beatmaps
	  (
		  id integer not null primary key,
		  sum text not null,
		  path text,
		  source text,
		  beats integer,
		  tempo real,
		  created integer,
		  data blob
	  );
	create index if not exists beatmaps_sum on beatmaps(sum);
	create table if not exists validations
	  (
		  id integer not null primary key,
		  sum text not null,
		  path text,
		  passed integer,
		  warnings integer,
		  created integer
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create tables")
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

func (s *DefaultStore) SaveBeatMap(sum, path string, b *beatmap.BeatMap) error {
	data, err := msgpack.Marshal(b)
	if nil != err {
		return errors.Wrap(err, "unable to marshal beat map")
	}
	_, err = s.db.Exec("insert into beatmaps(sum, path, source, beats, tempo, created, data) values(?, ?, ?, ?, ?, ?, ?)",
		sum, path, b.Source, b.BeatCount, b.Tempo, time.Now().UnixNano(), data)
	return errors.Wrap(err, "unable to save beat map")
}

func (s *DefaultStore) LoadBeatMap(sum string) (*beatmap.BeatMap, error) {
	var data []byte
	err := s.db.QueryRow("select data from beatmaps where sum = ? order by created desc, id desc limit 1", sum).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if nil != err {
		return nil, errors.Wrap(err, "unable to load beat map")
	}
	var b beatmap.BeatMap
	if err := msgpack.Unmarshal(data, &b); nil != err {
		return nil, errors.Wrap(err, "unable to unmarshal beat map")
	}
	return &b, nil
}

func (s *DefaultStore) SaveValidation(sum, path string, passed bool, warnings int) error {
	_, err := s.db.Exec("insert into validations(sum, path, passed, warnings, created) values(?, ?, ?, ?, ?)",
		sum, path, passed, warnings, time.Now().UnixNano())
	return errors.Wrap(err, "unable to save validation")
}

func (s *DefaultStore) History(limit int) ([]Entry, error) {
	if limit < 1 {
		return nil, errors.Wrapf(ErrInvalidLimit, "got %d", limit)
	}
	entries := []Entry{}

	rows, err := s.db.Query("select sum, path, source, beats, tempo, created from beatmaps order by created desc, id desc limit ?", limit)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load beat maps")
	}
	for rows.Next() {
		e := Entry{Kind: KindBeatMap}
		var created int64
		if err := rows.Scan(&e.Sum, &e.Path, &e.Source, &e.Beats, &e.Tempo, &created); nil != err {
			rows.Close()
			return nil, errors.Wrap(err, "unable to scan beat map")
		}
		e.Created = time.Unix(0, created)
		entries = append(entries, e)
	}
	rows.Close()

	rows, err = s.db.Query("select sum, path, passed, warnings, created from validations order by created desc, id desc limit ?", limit)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load validations")
	}
	defer rows.Close()
	for rows.Next() {
		e := Entry{Kind: KindValidation}
		var created int64
		if err := rows.Scan(&e.Sum, &e.Path, &e.Passed, &e.Warnings, &created); nil != err {
			return nil, errors.Wrap(err, "unable to scan validation")
		}
		e.Created = time.Unix(0, created)
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Created.After(entries[j].Created)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
