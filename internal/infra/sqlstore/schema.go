package sqlstore

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
  id           TEXT PRIMARY KEY,
  title        TEXT NOT NULL,
  description  TEXT NOT NULL DEFAULT '',
  owner        TEXT NOT NULL,
  status       TEXT NOT NULL,
  priority     TEXT NOT NULL,
  created_by   TEXT NOT NULL,
  artifacts    TEXT,
  thread_id    TEXT NOT NULL DEFAULT '',
  created_at   TEXT NOT NULL,
  updated_at   TEXT NOT NULL,
  completed_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);

CREATE TABLE IF NOT EXISTS activity (
  id             TEXT PRIMARY KEY,
  task_id        TEXT NOT NULL,
  actor_name     TEXT NOT NULL,
  action         TEXT NOT NULL,
  previous_owner TEXT NOT NULL DEFAULT '',
  new_owner      TEXT NOT NULL DEFAULT '',
  message        TEXT NOT NULL DEFAULT '',
  timestamp      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_task_id ON activity(task_id);
CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp);

CREATE TABLE IF NOT EXISTS agents (
  id              TEXT PRIMARY KEY,
  name            TEXT NOT NULL UNIQUE,
  display_name    TEXT NOT NULL,
  personality     TEXT NOT NULL DEFAULT '',
  specialization  TEXT NOT NULL DEFAULT '',
  is_active       INTEGER NOT NULL DEFAULT 1,
  is_coordinator  INTEGER NOT NULL DEFAULT 0,
  last_run        TEXT,
  tasks_completed INTEGER NOT NULL DEFAULT 0
);
`
