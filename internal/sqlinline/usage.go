package sqlinline

const QInsertUsageEvent = `--sql e40f651c-a8b3-44c7-a911-bb8a0ed5f6ef
insert into usage_events(id, session_id, request_id, tool, meter, cost, outcome, latency_ms, created_at, properties)
values (gen_random_uuid(), $1::uuid, nullif($2::text, ''), $3::text, $4::text, $5::int, $6::text, $7::int, now(), coalesce($8::jsonb, '{}'::jsonb));
`

const QUsageSummary24h = `--sql 0f0557a2-1731-4fc6-8cbe-8540b1d2b6df
select
  tool,
  count(*) filter (where outcome = 'ok')     as ok,
  count(*) filter (where outcome = 'failed') as failed,
  count(*) filter (where outcome = 'denied') as denied,
  coalesce(sum(cost) filter (where outcome <> 'denied'), 0) as units_spent
from usage_events
where created_at >= now() - interval '24 hours'
group by tool
order by tool;
`

const QEnsureUsageSchema = `--sql 3b9e2f61-5c1d-4a8e-9f07-6d2c81e4b5a9
create table if not exists usage_events (
    id uuid primary key,
    session_id uuid not null,
    request_id text,
    tool text not null,
    meter text not null,
    cost int not null default 0,
    outcome text not null,
    latency_ms int not null default 0,
    created_at timestamptz not null default now(),
    properties jsonb not null default '{}'::jsonb
);
create index if not exists usage_events_created_at_idx on usage_events (created_at);
create table if not exists integration_tokens (
    id uuid primary key,
    provider text not null unique,
    token text not null,
    properties jsonb not null default '{}'::jsonb,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
`
