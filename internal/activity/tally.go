package activity

// Winner picks the option with the highest vote count. Ties go to the option
// with the smallest id (earliest-created); options without ids keep input
// order. The result is deterministic for identical input.
func Winner(options []VoteOption) (VoteOption, bool) {
	if len(options) == 0 {
		return VoteOption{}, false
	}
	best := options[0]
	for _, opt := range options[1:] {
		if opt.VoteCount > best.VoteCount {
			best = opt
			continue
		}
		if opt.VoteCount == best.VoteCount && opt.ID < best.ID {
			best = opt
		}
	}
	return best, true
}
