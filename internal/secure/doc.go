// Package secure generates credential material and keeps the 1Password
// service account token in the OS keyring.
//
// Random bytes are drawn into a memguard locked buffer, which keeps them
// out of swap and wipes them once encoded. Call memguard.Purge at process
// exit to scrub anything still held.
package secure
