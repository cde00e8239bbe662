// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine is the survey traversal state machine.

# States

Each user session walks:

	SelectingLanguage → AwaitingStart → AwaitingAnswer ⇄ AwaitingOverride

Completion has no stored state: the session is destroyed after the closing
message, operator report and archive write. The terminal age rejection also
destroys the session, bans the user, and sends no report.

# Turn Model

HandleMessage processes one inbound turn. The question document is loaded
at most once per turn; validation, branching and the next prompt all see
that one snapshot. Operator edits therefore become visible on a user's next
turn, never mid-turn.

# Advancing

On acceptance the engine records answers[label] and scans forward: any
question whose dependency does not match the referenced earlier answer
(case-insensitive) is skipped without being prompted or recorded. List
exhaustion completes the survey. The prior-experience gate is expressed
through the same dependency scan: a negative answer fails every dependent
question's check, so the whole contiguous run is skipped in one pass.

# Sessions and Bans

Sessions live in a mutex-guarded in-memory table keyed by user id. A new
/start discards prior state; nothing survives a process restart. EvictIdle
implements the opt-in idle TTL sweep. The ban set is append-only for the
process lifetime, checked before any state transition, and replayed from
the archive at startup when one is configured.

# Boundaries

Sender is the delivery adapter (content + recipient only, no transport
details). Recorder is the optional archive; its failures are logged and
never disturb a user session.
*/
package engine
