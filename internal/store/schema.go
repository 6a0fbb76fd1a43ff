package store

// schema holds the full set of table and view definitions (spec.md §3). It
// is re-applied from scratch on every process start and every ingest
// "Reconnect" (spec.md §4.4) — the store carries no durability guarantees
// across restarts by design.
const schema = `
CREATE TABLE blocks (
	height             INTEGER PRIMARY KEY,
	hash               TEXT NOT NULL UNIQUE,
	prev_block_hash    TEXT,
	transactions_hash  TEXT,
	created_at         TEXT NOT NULL,
	transactions_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE domains (
	name     TEXT PRIMARY KEY,
	logo     TEXT,
	metadata TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE accounts (
	signatory TEXT NOT NULL,
	domain    TEXT NOT NULL REFERENCES domains(name),
	metadata  TEXT NOT NULL DEFAULT '{}',
	PRIMARY KEY (signatory, domain)
);

CREATE TABLE domain_owners (
	account_signatory TEXT NOT NULL,
	account_domain    TEXT NOT NULL,
	domain            TEXT NOT NULL REFERENCES domains(name),
	PRIMARY KEY (account_signatory, account_domain, domain),
	FOREIGN KEY (account_signatory, account_domain) REFERENCES accounts(signatory, domain)
);

CREATE TABLE asset_definitions (
	name               TEXT NOT NULL,
	domain             TEXT NOT NULL REFERENCES domains(name),
	owned_by_signatory TEXT NOT NULL,
	owned_by_domain    TEXT NOT NULL,
	mintable           TEXT NOT NULL,
	logo               TEXT,
	metadata           TEXT NOT NULL DEFAULT '{}',
	PRIMARY KEY (name, domain),
	FOREIGN KEY (owned_by_signatory, owned_by_domain) REFERENCES accounts(signatory, domain)
);

CREATE TABLE assets (
	definition_name   TEXT NOT NULL,
	definition_domain TEXT NOT NULL,
	owned_by_signatory TEXT NOT NULL,
	owned_by_domain   TEXT NOT NULL,
	value             TEXT NOT NULL,
	PRIMARY KEY (definition_name, definition_domain, owned_by_signatory, owned_by_domain),
	FOREIGN KEY (definition_name, definition_domain) REFERENCES asset_definitions(name, domain),
	FOREIGN KEY (owned_by_signatory, owned_by_domain) REFERENCES accounts(signatory, domain)
);

CREATE TABLE nfts (
	name              TEXT NOT NULL,
	domain            TEXT NOT NULL REFERENCES domains(name),
	owned_by_signatory TEXT NOT NULL,
	owned_by_domain   TEXT NOT NULL,
	content           TEXT NOT NULL DEFAULT '{}',
	PRIMARY KEY (name, domain),
	FOREIGN KEY (owned_by_signatory, owned_by_domain) REFERENCES accounts(signatory, domain)
);

CREATE TABLE roles (
	name        TEXT PRIMARY KEY,
	permissions TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE role_grants (
	account_signatory TEXT NOT NULL,
	account_domain    TEXT NOT NULL,
	role              TEXT NOT NULL REFERENCES roles(name),
	PRIMARY KEY (account_signatory, account_domain, role),
	FOREIGN KEY (account_signatory, account_domain) REFERENCES accounts(signatory, domain)
);

CREATE TABLE peers (
	peer_url   TEXT PRIMARY KEY,
	public_key TEXT NOT NULL
);

CREATE TABLE transactions (
	hash               TEXT PRIMARY KEY,
	block_height       INTEGER NOT NULL REFERENCES blocks(height),
	created_at         TEXT NOT NULL,
	authority_signatory TEXT NOT NULL,
	authority_domain   TEXT NOT NULL,
	signature          TEXT NOT NULL,
	nonce              INTEGER,
	metadata           TEXT NOT NULL DEFAULT '{}',
	time_to_live_ms    INTEGER,
	executable         TEXT NOT NULL,
	error              TEXT
);
CREATE INDEX ix_transactions_block ON transactions(block_height);
CREATE INDEX ix_transactions_authority ON transactions(authority_signatory, authority_domain);

CREATE TABLE instructions (
	transaction_hash TEXT NOT NULL REFERENCES transactions(hash),
	position         INTEGER NOT NULL,
	value            TEXT NOT NULL,
	PRIMARY KEY (transaction_hash, position)
);

CREATE TABLE checkpoint (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	height     INTEGER NOT NULL,
	hash       TEXT NOT NULL,
	applied_at TEXT NOT NULL
);

-- v_transactions augments Transactions with a display-form authority and
-- the committed/rejected status derived from the presence of 'error'.
CREATE VIEW v_transactions AS
SELECT
	t.*,
	t.authority_signatory || '@' || t.authority_domain AS authority,
	CASE WHEN t.error IS NULL THEN 'committed' ELSE 'rejected' END AS status
FROM transactions t;

-- v_instructions explodes each Instruction JSON object by its single
-- top-level key, yielding (kind, payload, ...).
CREATE VIEW v_instructions AS
SELECT
	i.transaction_hash,
	i.position,
	json_each.key  AS kind,
	CASE json_each.type
		WHEN 'true'    THEN 'true'
		WHEN 'false'   THEN 'false'
		WHEN 'text'    THEN json_quote(json_each.value)
		WHEN 'integer' THEN json_quote(json_each.value)
		WHEN 'real'    THEN json_quote(json_each.value)
		ELSE json_each.value
	END AS payload,
	t.created_at,
	t.authority_signatory || '@' || t.authority_domain AS authority,
	CASE WHEN t.error IS NULL THEN 'committed' ELSE 'rejected' END AS transaction_status,
	t.block_height
FROM instructions i
JOIN transactions t ON t.hash = i.transaction_hash
JOIN json_each(i.value) ON 1 = 1;

-- v_assets synthesizes the composite asset id: short form when the asset
-- definition's domain matches the owning account's domain, long form
-- otherwise.
CREATE VIEW v_assets AS
SELECT
	a.*,
	CASE WHEN a.definition_domain = a.owned_by_domain
		THEN a.definition_name || '##' || a.owned_by_signatory || '@' || a.owned_by_domain
		ELSE a.definition_name || '#' || a.definition_domain || '#' || a.owned_by_signatory || '@' || a.owned_by_domain
	END AS id
FROM assets a;

-- v_nfts synthesizes the "<name>$<domain>" id and the "<sig>@<domain>" owner.
CREATE VIEW v_nfts AS
SELECT
	n.*,
	n.name || '$' || n.domain AS id,
	n.owned_by_signatory || '@' || n.owned_by_domain AS owned_by
FROM nfts n;
`

// The schema is applied one statement at a time: SQLite's driver does not
// support multi-statement Exec reliably across all builds, so splitStatements
// (store.go) splits it on ';' rather than sending it as one string (grounded on blocktx/store/sqlite's one-table-per-Exec idiom).
