// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package archive keeps a durable record of completed submissions and
age-gate ban events on database/sql.

# Drivers

Two drivers are supported, selected by configuration:

  - sqlite (modernc.org/sqlite, pure Go) - the default, a local file
  - postgres (lib/pq) - for shared deployments

The SQL sticks to the portable subset: $n placeholders, TEXT timestamps in
RFC3339, no driver-specific defaults.

# Tables

  - submission: one row per completed survey
  - submission_answer: the answers, keyed by (submission_id, position) so
    traversal order is preserved
  - ban: one row per banned identity

# Role

The archive sits off the user path. Recording failures are logged by the
engine and never abort a turn; the only startup read is BannedUsers, which
replays permanent bans into the engine after a restart.
*/
package archive
