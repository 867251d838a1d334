// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
)

// defaultQuotes is the canonical starter content for a fresh board. The rows
// are inserted without an owner, which is also how the null added_by listing
// path gets real data to chew on.
var defaultQuotes = []struct {
	Content string
	Author  string
}{
	{"天生我材必有用。", "李白"},
	{"路漫漫其修远兮，吾将上下而求索。", "屈原"},
	{"不积跬步，无以至千里。", "荀子"},
	{"千里之行，始于足下。", "老子"},
	{"会当凌绝顶，一览众山小。", "杜甫"},
	{"海内存知己，天涯若比邻。", "王勃"},
	{"长风破浪会有时，直挂云帆济沧海。", "李白"},
	{"人生自古谁无死，留取丹心照汗青。", "文天祥"},
	{"少壮不努力，老大徒伤悲。", "《汉乐府》"},
	{"业精于勤荒于嬉，行成于思毁于随。", "韩愈"},
	{"黑发不知勤学早，白首方悔读书迟。", "颜真卿"},
	{"三人行，必有我师焉。", "孔子"},
	{"己所不欲，勿施于人。", "孔子"},
	{"知之者不如好之者，好之者不如乐之者。", "孔子"},
	{"敏而好学，不耻下问。", "孔子"},
	{"学而不思则罔，思而不学则殆。", "孔子"},
	{"读万卷书，行万里路。", "刘彝"},
	{"书山有路勤为径，学海无涯苦作舟。", "韩愈"},
	{"千教万教教人求真，千学万学学做真人。", "陶行知"},
	{"立身以立学为先，立学以读书为本。", "欧阳修"},
}

// SeedDefaultQuotes inserts the default quote set when the quotes table is
// empty. Running it against a populated store is a no-op, so it is safe to
// call on every startup.
func SeedDefaultQuotes(ctx context.Context, s Store) (int, error) {
	count, err := s.CountQuotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing quotes before seeding: %w", err)
	}
	if count > 0 {
		dbLogf("db: quotes table already has %d rows, skipping seed", count)
		return 0, nil
	}

	inserted := 0
	for _, q := range defaultQuotes {
		if _, err := s.InsertQuote(ctx, q.Content, q.Author, nil); err != nil {
			return inserted, fmt.Errorf("failed to seed quote %q: %w", q.Author, err)
		}
		inserted++
	}
	return inserted, nil
}
