package consts

const (
	SmsKey           = "sms:validate:code:"
	SmsCheckTokenKey = "sms:check:token:"
	SmsCooldownKey   = "sms:cooldown:"

	UserHomeInfoKey   = "user:home:info:"
	UserSimpleInfoKey = "user:simple:info:"

	FigureDetailKey       = "figure:detail:"
	FigureVoteKey         = "figure:vote:"
	FigureCommentKey      = "figure:comment:"
	FigureVoteSummaryKey  = "figure:vote:summary:"
	FigureStreakStatsKey  = "figure:streak:stats:"
	FigureDirtyKey        = "figure:dirty"
	FigureMetrics7DaysKey = "figure:metrics:7days:"

	CampaignActiveListKey = "campaign:active:list"
	CampaignImpressionKey = "campaign:impression:"
	CampaignClickKey      = "campaign:click:"
	CampaignDirtyKey      = "campaign:dirty"
)

const (
	UserDetailLock = "user:detail:lock:"
)
