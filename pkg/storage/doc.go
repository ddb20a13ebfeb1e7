// Package storage provides persistent storage for the FridgeChef backend.
// It uses BadgerDB as the embedded database with JSON-marshalled values and
// prefix scans for listing.
package storage
