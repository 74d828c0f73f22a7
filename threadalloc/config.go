package threadalloc

import s "github.com/bnclabs/gosettings"

import "github.com/1Crazymoney/snmalloc/malloc"

// Defaultsettings for the arena behind every handle, refer to
// malloc.Defaultsettings() for individual parameters.
func Defaultsettings() s.Settings {
	return malloc.Defaultsettings()
}
