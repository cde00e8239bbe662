// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package docstore persists the question document as a single JSON file.

# Loading

Load never fails:

	doc := store.Load()

An unreadable or unparsable file logs a warning and yields an empty
document, which the engine treats as "no questions configured". Load also
resolves semantic roles: documents that predate the explicit role field get
their age / income / source questions tagged from the known localized
phrasings, once, at load time.

The engine calls Load once per inbound user turn, so a concurrent operator
edit becomes visible on the next turn of any in-flight survey. Dependency
indices are only assumed stable within a single snapshot.

# Saving

	if err := store.Save(doc); err != nil { ... }

Save writes the document, re-reads the file, and structurally compares the
round-tripped value to the intended one. A mismatch returns ErrVerifyFailed.
Save never mutates or consumes the caller's in-memory document, so a failed
save can be reported to the operator and retried explicitly.

Save(Load()) is idempotent: repeated round trips yield structurally
identical documents.
*/
package docstore
