package mlkem

// wipe overwrites the given byte slices with zeros. Secret intermediates
// are wiped before the functions holding them return, instead of waiting
// for the garbage collector.
func wipe(secrets ...[]byte) {
	for _, s := range secrets {
		for i := range s {
			s[i] = 0
		}
	}
}
