package main

import "house-price-pipeline/cmd/housepipe/cmd"

func main() {
	cmd.Execute()
}
