package tgbot

// User-facing texts. The guild war flavor is intentional.
const (
	msgWelcome = "Welcome to the KIK vs SIK distance war! 🏁\n" +
		"Pick your guild to start logging kilometers:"
	msgHelp = "You fight for %s. ⚔️\n\n" +
		"Send a photo of your exercise to log it. A caption like\n" +
		"\"running, 5.5\" records it in one go.\n\n" +
		"/status — how the war is going\n" +
		"/personal — your all-time totals\n" +
		"/mydaily — your totals for today\n" +
		"/cancel — abandon an unfinished log\n" +
		"/update_name — refresh your display name\n" +
		"/reset_guild — defect to the other side (rewrites your history!)"

	msgGuildJoined    = "✅ Welcome to the ranks of %s! Now send a photo of your first exercise."
	msgAlreadyInGuild = "You already fight for %s. Use /reset_guild if you really want to defect."
	msgResetGuild     = "⚠️ Defecting rewrites your whole logged history to the new guild.\nPick your new guild:"
	msgGuildReset     = "✅ Done. You and your entire history now belong to %s."
	msgNameUpdated    = "✅ Name updated: %s"

	msgAskSport      = "Got it! 📸 What sport was that?"
	msgAskDistance   = "How far? Send the distance in kilometers, e.g. 5.5"
	msgAskSteps      = "How many steps?"
	msgBadDistance   = "That doesn't look like a positive number. Send the distance in kilometers, e.g. 5.5"
	msgBadSteps      = "That doesn't look like a positive number. Send the step count, e.g. 10000"
	msgRecorded      = "✅ Recorded %s: %.1f km. Onward for the guild!"
	msgRecordedSteps = "✅ Recorded 👣 Steps: %.0f steps (%.1f km). Onward for the guild!"

	msgCaptionTooLarge = "🤔 %.1f looks too large to record directly. Let's do it step by step — what sport was that?"
	msgDisambiguate    = "🤔 %.1f is a lot for %s. Were those steps after all?"

	msgCancelled      = "Cancelled. Nothing is pending now."
	msgNothingPending = "Nothing is pending — send a photo of your exercise first."
	msgClosed         = "Submissions are currently closed. Hold your kilometers!"
	msgNoGuild        = "Pick your guild first — hit /start to register."
	msgAdminOnly      = "That command is for the organizers only."
	msgUnknownCommand = "Unknown command. Try /start."
	msgStoreError     = "⚠️ Something went wrong on our side. Please contact the organizers."
)
