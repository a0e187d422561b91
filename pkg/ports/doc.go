/*
Package ports defines the host container contract consumed by entity stores.

These interfaces decouple the store engine from any particular state container, allowing
stores to register their operations and be driven by whatever dispatch mechanism the host
provides.

# Key Interfaces

  - Registrar: Accepts a Module (path, default state, operation handlers).
  - Dispatcher: Routes a domain.Action to the handler registered under its type.
  - StateReader: Exposes the current immutable state tree to selectors.
  - StateContext: The read/write accessor a handler receives over its own state slice.
*/
package ports
