package xconf_test

import (
	"fmt"

	"github.com/omeyang/xsample/pkg/config/xconf"
)

func ExampleProfileFromBytes() {
	data := []byte(`
method: hash
rate: 0.01
salt: users-2024
column: 0
`)

	p, err := xconf.ProfileFromBytes(data, xconf.FormatYAML)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := p.Validate(); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(p.Method, p.Rate, p.Salt, p.Column, p.Hash)
	// Output: hash 0.01 users-2024 0 xxhash32
}

func ExampleProfile_Validate() {
	p := xconf.DefaultProfile()
	p.Rate = 1.5
	fmt.Println(p.Validate())
	// Output: xconf: invalid profile: rate 1.5 out of range [0, 1]
}
