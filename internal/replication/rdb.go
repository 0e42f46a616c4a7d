package replication

// EmptyRDBHex is the synthetic, fixed empty-database RDB snapshot sent
// as the bulk payload following FULLRESYNC (spec.md §4.6, §8 S5). It is
// the same 88-byte canonical "empty RDB" blob used across Redis
// reimplementations, recovered here (grounded on rusty-satyam-gedis's
// embedded constant) rather than synthesized, since spec.md only
// requires that some fixed empty snapshot be emitted.
const EmptyRDBHex = "524544495330303131fa0972656469732d76657205372e322e30fa0a72656469732d62697473c040fa056374696d65c26d08bc65fa08757365642d6d656dc2b0c41000fa08616f662d62617365c000fff06e3bfec0ff5aa2"
