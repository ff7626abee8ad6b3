package archivedb

import (
	"context"
	"database/sql"
	"time"

	"github.com/nastools/d2fn/pkg/d2fnerr"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tape (
	id          INTEGER PRIMARY KEY,
	flag        INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS archive (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	tape            INTEGER NOT NULL REFERENCES tape(id),
	tape_file_index INTEGER NOT NULL,
	size            INTEGER NOT NULL,
	hash            BLOB NOT NULL,
	ts              INTEGER NOT NULL,
	flag            INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS file (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	inode   INTEGER NOT NULL,
	path    TEXT NOT NULL,
	flag    INTEGER NOT NULL DEFAULT 0,
	archive INTEGER NOT NULL REFERENCES archive(id),
	version INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_file_inode ON file(inode);
`

// Store wraps a SQLite connection holding the archive/tape metadata
// described in model.go. The underlying driver is pure Go (no cgo),
// matching the rest of this codebase's dependency-free-build posture.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, d2fnerr.NewStorageError(err, d2fnerr.CodeStorageOpenFailure, "unable to open archive database").
			WithPath(path)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, d2fnerr.NewStorageError(err, d2fnerr.CodeStorageOpenFailure, "unable to initialize archive database schema").
			WithPath(path)
	}

	log.Infow("archive database ready", "path", path)
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	s.log.Infow("closing archive database")
	return s.db.Close()
}

// CreateTape registers a new tape and returns its assigned id.
func (s *Store) CreateTape(ctx context.Context, flag uint32, description string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tape (flag, description) VALUES (?, ?)`, flag, description,
	)
	if err != nil {
		return 0, d2fnerr.NewStorageError(err, d2fnerr.CodeStorageQueryFailure, "unable to insert tape").
			WithTable("tape")
	}
	return res.LastInsertId()
}

// AppendArchive records a new archive entry and returns its assigned id.
func (s *Store) AppendArchive(ctx context.Context, archive Archive) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO archive (tape, tape_file_index, size, hash, ts, flag) VALUES (?, ?, ?, ?, ?, ?)`,
		archive.Tape, archive.TapeFileIndex, archive.Size, archive.Hash[:], archive.Timestamp, archive.Flag,
	)
	if err != nil {
		return 0, d2fnerr.NewStorageError(err, d2fnerr.CodeStorageQueryFailure, "unable to insert archive").
			WithTable("archive")
	}
	return res.LastInsertId()
}

// AppendFile records that inode/path was captured by archiveID as of now.
func (s *Store) AppendFile(ctx context.Context, file FileOnDisk) error {
	version := file.Version
	if version == 0 {
		version = uint64(time.Now().Unix())
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO file (inode, path, flag, archive, version) VALUES (?, ?, ?, ?, ?)`,
		file.Inode, file.Path, file.Flag, file.Archive, version,
	)
	if err != nil {
		return d2fnerr.NewStorageError(err, d2fnerr.CodeStorageQueryFailure, "unable to insert file record").
			WithTable("file")
	}
	return nil
}

// FilesByInode returns every recorded file association for the given inode,
// most recent version first.
func (s *Store) FilesByInode(ctx context.Context, inode uint64) ([]FileOnDisk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, inode, path, flag, archive, version FROM file WHERE inode = ? ORDER BY version DESC`, inode,
	)
	if err != nil {
		return nil, d2fnerr.NewStorageError(err, d2fnerr.CodeStorageQueryFailure, "unable to query files by inode").
			WithTable("file")
	}
	defer rows.Close()

	var files []FileOnDisk
	for rows.Next() {
		var f FileOnDisk
		if err := rows.Scan(&f.ID, &f.Inode, &f.Path, &f.Flag, &f.Archive, &f.Version); err != nil {
			return nil, d2fnerr.NewStorageError(err, d2fnerr.CodeStorageQueryFailure, "unable to scan file row").
				WithTable("file")
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
