package main

import "github.com/hashgraph/hedera-sdk-go-core/internal/cli"

func main() {
	cli.Execute()
}
