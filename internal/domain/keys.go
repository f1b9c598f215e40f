package domain

// KeyPrefix namespaces every key this service writes.
// Overridden once at startup from storage.key_prefix before any
// repository is constructed.
var KeyPrefix = "foodscout:"
