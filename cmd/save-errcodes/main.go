package main

import (
	"fmt"

	liberr "totktools/internal/common"
)

func main() {
	fmt.Println("Save Tools Error Code List")
	fmt.Println()

	for _, c := range liberr.Codes() {
		fmt.Printf("%d: %s - %s\n", c.Code, c.Name, c.Message)
	}
}
