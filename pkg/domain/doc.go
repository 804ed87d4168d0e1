/*
Package domain contains the core pipeline model shared by every other package.

It defines the building blocks of a pipeline (Node, Port, Edge), the typed
configuration variants of each node type, the immutable Graph snapshot handed
to the submission flow, and the error taxonomy. The package is pure: no I/O,
no logging, no transport.

# Key Entities

  - Node: a typed block with a Config variant and an opaque canvas Position.
  - Config: a tagged union, one struct per NodeType, each with its own schema.
  - Port: a derived connection point; never stored, always recomputed.
  - Edge: a directed link between an outbound and an inbound port.
  - Graph: a snapshot of nodes and edges in insertion order.
*/
package domain
