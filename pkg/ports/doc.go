/*
Package ports defines the driven ports (interfaces) of the pipeline core.

They decouple the validity protocol from transport and storage details, so the
core can be exercised with fakes and wired to HTTP, in-process or cached
implementations.

# Key Interfaces

  - AcyclicityChecker: obtains the directed-cycle verdict for a submitted payload.
  - VerdictCache: remembers verdicts by structural fingerprint (memory or Redis).
*/
package ports
