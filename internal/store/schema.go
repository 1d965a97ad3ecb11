package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    groceries            REAL NOT NULL DEFAULT 0,
    buffer               REAL NOT NULL DEFAULT 0,
    lump_rule            INTEGER NOT NULL DEFAULT 100,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS debts (
    position             INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL,
    balance              REAL NOT NULL,
    min_payment          REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    position             INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL,
    amount               REAL NOT NULL,
    frequency            TEXT NOT NULL,
    due_day              INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_log (
    id                   TEXT PRIMARY KEY,
    seq                  INTEGER NOT NULL,
    run_date             TEXT NOT NULL,
    pay                  REAL NOT NULL,
    bills                REAL NOT NULL,
    groceries            REAL NOT NULL,
    extra                REAL NOT NULL,
    target               TEXT NOT NULL DEFAULT '',
    target_payment       REAL NOT NULL DEFAULT 0,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_run_log_seq ON run_log(seq);
`
