package constant

// User-facing messages are Portuguese; log and API-internal messages
// stay English.
const (
	SupportEmail = "suporte@euanapratica.com"

	MsgSupportSuffix = "Se o problema persistir, entre em contato com " + SupportEmail + "."

	MsgInternalError        = "Ocorreu um erro inesperado. " + MsgSupportSuffix
	MsgResourceNotFound     = "Recurso não encontrado. " + MsgSupportSuffix
	MsgInvitationNotFound   = "Convite inválido ou expirado. " + MsgSupportSuffix
	MsgSubscriptionNotFound = "Assinatura não encontrada. " + MsgSupportSuffix
	MsgPlanNotFound         = "Plano não encontrado. " + MsgSupportSuffix
	MsgBookingNotFound      = "Sessão não encontrada. " + MsgSupportSuffix

	MsgSubscriptionCancelled = "Sua assinatura foi cancelada e permanece ativa até o fim do período pago."
	MsgSubscriptionEnded     = "Sua assinatura foi encerrada."
	MsgSubscriptionActive    = "Você já possui uma assinatura ativa. Cancele o plano atual antes de contratar outro."
	MsgInvitationAccepted    = "Convite aceito! Seu plano foi ativado."
	MsgAlreadyEnrolled       = "Você já está matriculado neste plano."

	MsgLimitReached          = "Você atingiu o limite mensal do seu plano. Faça upgrade para continuar."
	MsgRescheduleNotAllowed  = "Esta sessão não pode mais ser remarcada."
	MsgCancellationTooLate   = "Cancelamento fora do prazo: a sessão será registrada como não comparecimento."
	MsgConcurrentLimit       = "Você atingiu o número máximo de sessões agendadas. Conclua ou cancele uma sessão antes de agendar outra."
	MsgBookingTooFarInFuture = "A data escolhida está além do horizonte de agendamento permitido."
)
