/*
Package ports defines the driven ports (interfaces) of the flow assembler.

These interfaces decouple flow composition from where definitions are kept,
allowing the assembler to work with various storage backends.

# Key Interfaces

  - FlowLoader: Retrieves raw flow definition documents (e.g., from Loam or Memory).
  - FlowStore: A FlowLoader that also accepts new definitions (e.g., Redis).
*/
package ports
